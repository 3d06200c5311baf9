package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"plantdefender/internal/middleware"
	"plantdefender/internal/service"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type HandlerSet struct {
	log         zerolog.Logger
	environment string
	auth        *service.AuthService
	scans       *service.ScanService
	store       Pinger
	cache       Pinger
}

func NewHandlerSet(
	log zerolog.Logger,
	environment string,
	auth *service.AuthService,
	scans *service.ScanService,
	store Pinger,
	cache Pinger,
) HandlerSet {
	return HandlerSet{
		log:         log,
		environment: environment,
		auth:        auth,
		scans:       scans,
		store:       store,
		cache:       cache,
	}
}

// RegisterRoutes mounts every endpoint on router.
func (h HandlerSet) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)
	router.GET("/diseases", h.ListDiseases)

	auth := router.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	protected := router.Group("")
	protected.Use(middleware.Auth(h.auth))
	protected.GET("/auth/me", h.Me)
	protected.POST("/scans", h.CreateScan)
	protected.GET("/scans", h.ListScans)
	protected.GET("/scans/:id", h.GetScan)
}
