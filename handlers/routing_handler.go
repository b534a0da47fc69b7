package handlers

import (
	"log"
	"net/http"

	"campus-route-server/models"
	"campus-route-server/services"
	"campus-route-server/utils"

	"github.com/gin-gonic/gin"
)

type RoutingHandler struct {
	routingService *services.RoutingService
}

func NewRoutingHandler(routingService *services.RoutingService) *RoutingHandler {
	return &RoutingHandler{
		routingService: routingService,
	}
}

func (h *RoutingHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/directions/profiles", h.GetProfiles)
	r.GET("/api/directions/:profile", h.GetDirections)
}

func (h *RoutingHandler) GetDirections(c *gin.Context) {
	profile := utils.ParseProfile(c.Param("profile"))

	var query models.DirectionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ApiError{Error: err.Error()})
		return
	}

	log.Printf("=== Received %s directions request: %s -> %s ===", c.Param("profile"), query.Start, query.End)

	result, err := h.routingService.GetDirections(c.Request.Context(), profile, query.Start, query.End)
	if err != nil {
		log.Printf("Directions request failed: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Body())
}

func (h *RoutingHandler) GetProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, models.ProfilesResponse{Profiles: models.Profiles})
}
