package controllers

import (
	"errors"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps domain errors onto the response envelope.
func handleServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.BadRequest(c, ve.Msg)
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrOrderClosed):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAssignmentInFlight):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPartnerBusy):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
