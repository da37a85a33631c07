package handlers

import (
	"net/http"

	"github.com/Shaurya01836/Hackzen-sub006/internal/apperr"
	"github.com/Shaurya01836/Hackzen-sub006/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
	Kind  string `json:"kind" example:"validation"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondError maps the app error taxonomy onto HTTP statuses. Only
// the stable kind and client-facing message cross the wire.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(statusFor(kind), ErrorResponse{
		Error: apperr.MessageOf(err),
		Kind:  string(kind),
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindInvalidScore:
		return http.StatusBadRequest
	case apperr.KindDeadlineExceeded, apperr.KindRoundNotClosed:
		return http.StatusUnprocessableEntity
	case apperr.KindDuplicateSubmission, apperr.KindNotEditable, apperr.KindAlreadyFinalized:
		return http.StatusConflict
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func principalID(c *gin.Context) uint {
	if v, ok := c.Get(middleware.CtxPrincipalID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
