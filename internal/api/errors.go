package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/VitaminP8/dsaboard/internal/auth"
	"github.com/VitaminP8/dsaboard/internal/forum"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, forum.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(kind, forum.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, forum.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, forum.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error body for err. Failures that are not a
// caller mistake are logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var fe *forum.Error
	switch {
	case errors.As(err, &fe):
		status := statusFor(fe.Kind)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("route", c.FullPath()).Msg(fe.Message)
		}
		c.JSON(status, gin.H{"error": fe.Message})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
	case errors.Is(err, auth.ErrIdentityMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "User ID does not match the session"})
	case errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
	default:
		log.Error().Err(err).Str("route", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}

// bindJSON decodes an optional JSON body; an empty body leaves obj zeroed.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}
