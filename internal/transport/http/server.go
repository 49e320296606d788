package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "uinify-backend/internal/app"
	"uinify-backend/internal/bootstrap"
	"uinify-backend/internal/cache"
	rabbitmqClient "uinify-backend/internal/platform/rabbitmq"
	"uinify-backend/internal/repository"
	"uinify-backend/internal/transport/http/handler"
	"uinify-backend/internal/transport/http/middleware"
	"uinify-backend/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog(app.Log), gin.Recovery())
	if corsMiddleware := middleware.CORS(app.Config.CORS); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found.")
	})

	var componentCache appsvc.ComponentCache
	if app.Redis != nil {
		ttl := time.Duration(app.Config.Redis.ComponentTTLSeconds) * time.Second
		componentCache = cache.NewComponentCache(app.Redis, ttl)
	}
	var publisher appsvc.EventPublisher
	if app.MQConn != nil {
		publisher = rabbitmqClient.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ChangeEventQueue)
	}

	store := repository.NewStore(app.DB)
	userService := appsvc.NewUserService(store, publisher, app.Log)
	componentService := appsvc.NewComponentService(store, componentCache, publisher, app.Log)

	healthHandler := handler.NewHealthHandler(app)
	userHandler := handler.NewUserHandler(userService)
	componentHandler := handler.NewComponentHandler(componentService)

	router.GET("/healthz", healthHandler.Check)

	router.GET("/users", userHandler.List)
	router.POST("/user", userHandler.Create)
	router.GET("/user/:id", userHandler.Get)
	router.DELETE("/user/:id", userHandler.Delete)
	router.GET("/user/:id/components", userHandler.Components)

	router.GET("/components", componentHandler.List)
	router.POST("/component", componentHandler.Create)
	router.GET("/component/:id", componentHandler.Get)
	router.PUT("/component/:id", componentHandler.Update)
	router.DELETE("/component/:id", componentHandler.Delete)

	return router
}
