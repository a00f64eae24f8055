package handlers

import (
	"aircon_controller/internal/logger"
	"aircon_controller/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the read-only HTTP API to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	apiKey   string
}

// NewHandler constructs a handler. An empty apiKey leaves /api/v1 open.
func NewHandler(services *service.Service, log *logger.Logger, apiKey string) *Handler {
	return &Handler{services: services, log: log, apiKey: apiKey}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.apiKeyMiddleware)
	{
		api.GET("/status", h.getStatus)
		// Query example: ?from=2025-08-01&to=2025-08-31&type=setpoint_changed
		api.GET("/events", h.getEvents)
	}
}
