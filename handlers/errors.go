package handlers

import (
	"errors"
	"log"
	"net/http"

	"campus-route-server/models"
	"campus-route-server/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP statuses. Upstream failures keep
// the engine's own status.
func statusFor(err error) int {
	var invalid *services.InvalidInputError
	var notFound *services.NotFoundError
	var upstream *services.UpstreamError

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &upstream):
		if upstream.Status == 0 {
			return http.StatusBadGateway
		}
		return upstream.Status
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := models.ApiError{Error: err.Error()}

	var upstream *services.UpstreamError
	if errors.As(err, &upstream) {
		resp.Upstream = upstream.Payload
	}
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %v", err)
		resp.Error = "internal server error"
	}

	c.JSON(status, resp)
}
