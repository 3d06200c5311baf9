package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"plantdefender/internal/cache"
)

type healthResponse struct {
	Status      string `json:"status"`
	Store       string `json:"store"`
	Cache       string `json:"cache"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:      "ok",
		Store:       h.check(ctx, "store", h.store),
		Cache:       h.check(ctx, "cache", h.cache),
		Environment: h.environment,
	}

	status := http.StatusOK
	if resp.Store == "error" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h HandlerSet) check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		if errors.Is(err, cache.ErrDisabled) {
			return "disabled"
		}
		h.log.Error().Err(err).Str("component", name).Msg("health check failed")
		return "error"
	}
	return "ok"
}
