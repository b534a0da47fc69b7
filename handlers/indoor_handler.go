package handlers

import (
	"log"
	"net/http"
	"strconv"

	"campus-route-server/indoor"
	"campus-route-server/models"

	"github.com/gin-gonic/gin"
)

type IndoorHandler struct {
	fixtures *indoor.Fixtures
}

func NewIndoorHandler(fixtures *indoor.Fixtures) *IndoorHandler {
	return &IndoorHandler{fixtures: fixtures}
}

func (h *IndoorHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/indoor_directions", h.GetIndoorDirections)
}

// GetIndoorDirections answers {} when no itinerary can be built; the map
// client treats that as "no route".
func (h *IndoorHandler) GetIndoorDirections(c *gin.Context) {
	var query models.IndoorDirectionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ApiError{Error: err.Error()})
		return
	}
	accessible, _ := strconv.ParseBool(query.Disabled)

	directions := h.fixtures.GetIndoorDirections(query.Start, query.Destination, accessible)
	if directions == nil {
		log.Printf("No indoor route from %q to %q (accessible=%t)", query.Start, query.Destination, accessible)
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, directions)
}
