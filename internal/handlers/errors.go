package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"plantdefender/internal/apperr"
)

// writeError is the single place service errors become HTTP responses.
func (h HandlerSet) writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if status >= http.StatusInternalServerError && !apperr.IsUpstream(err) {
		// Upstream failures are already logged with their raw excerpt.
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(status, gin.H{
		"error":  string(kind),
		"detail": apperr.PublicMessage(err),
	})
}

func (h HandlerSet) badRequest(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":  string(apperr.KindValidation),
			"detail": "request body too large",
		})
		return
	}
	h.writeError(c, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
}
