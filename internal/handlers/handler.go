package handlers

import (
	_ "uhoo_bridge/docs"
	"uhoo_bridge/internal/logger"
	"uhoo_bridge/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Accessory stream, same port as the REST API.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.requireUser)
	{
		h.registerAccessoryRoutes(api)
		h.registerReadingRoutes(api)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerAccessoryRoutes(api *gin.RouterGroup) {
	accessory := api.Group("/accessory")
	{
		accessory.GET("/state", h.getAccessoryState)
		accessory.POST("/refresh", h.refreshAccessory)
		accessory.GET("/air-quality", h.getAirQuality)
	}
}

func (h *Handler) registerReadingRoutes(api *gin.RouterGroup) {
	readings := api.Group("/readings")
	{
		readings.GET("", h.listReadings)
		readings.GET("/latest", h.latestReading)
	}
}
