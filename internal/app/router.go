package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/storefront-backend/internal/http"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:                log,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		ProductHandler:     handlers.Product,
		CartHandler:        handlers.Cart,
		TransactionHandler: handlers.Transaction,
	})
}
