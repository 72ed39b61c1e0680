package handlers

import (
	"errors"
	"net/http"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// errorStatus is the fixed mapping from error kind to transport status, applied
// once here at the boundary.
var errorStatus = []struct {
	kind   error
	status int
}{
	{apperrors.ErrValidation, http.StatusBadRequest},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrExternalService, http.StatusBadGateway},
	{apperrors.ErrDependency, http.StatusServiceUnavailable},
}

// respondError translates a service error into an HTTP response.
func respondError(c *gin.Context, err error) {
	for _, entry := range errorStatus {
		if errors.Is(err, entry.kind) {
			c.JSON(entry.status, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
