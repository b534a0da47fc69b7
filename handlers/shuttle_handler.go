package handlers

import (
	"net/http"

	"campus-route-server/models"
	"campus-route-server/services"

	"github.com/gin-gonic/gin"
)

type ShuttleHandler struct {
	shuttleService *services.ShuttleService
}

func NewShuttleHandler(shuttleService *services.ShuttleService) *ShuttleHandler {
	return &ShuttleHandler{shuttleService: shuttleService}
}

func (h *ShuttleHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/shuttle/stops", h.GetStops)
	r.GET("/api/shuttle/upcoming", h.GetUpcoming)
}

func (h *ShuttleHandler) GetStops(c *gin.Context) {
	stops, err := h.shuttleService.Stops(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ShuttleStopsResponse{Stops: stops})
}

func (h *ShuttleHandler) GetUpcoming(c *gin.Context) {
	var query models.UpcomingShuttleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ApiError{Error: err.Error()})
		return
	}

	resp, err := h.shuttleService.Upcoming(c.Request.Context(), query.Longitude, query.Latitude)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
