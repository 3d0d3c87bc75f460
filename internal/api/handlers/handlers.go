package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// writeError translates the service error taxonomy into HTTP responses.
// Validation failures carry their reason and product codes so the form can
// point at the offending fields; everything else becomes a generic notice.
func writeError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  ve.Error(),
			"reason": ve.Reason,
			"codes":  ve.Codes,
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, please retry"})
}
