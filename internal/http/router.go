package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storefront-backend/internal/http/middleware"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	ProductHandler     *httpH.ProductHandler
	CartHandler        *httpH.CartHandler
	TransactionHandler *httpH.TransactionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		if cfg.UserHandler != nil {
			protected.GET("/user", cfg.UserHandler.GetMe)
		}

		if cfg.ProductHandler != nil {
			protected.GET("/products", cfg.ProductHandler.List)
			protected.POST("/products/lookup", cfg.ProductHandler.Lookup)
			protected.GET("/products/categories", cfg.ProductHandler.Categories)
			protected.GET("/products/:id", cfg.ProductHandler.Get)
		}

		if cfg.CartHandler != nil {
			protected.GET("/cart", cfg.CartHandler.Get)
			protected.POST("/cart/items", cfg.CartHandler.AddItem)
			protected.PUT("/cart/items/:id", cfg.CartHandler.UpdateItem)
			protected.DELETE("/cart/items/:id", cfg.CartHandler.RemoveItem)
		}

		if cfg.TransactionHandler != nil {
			protected.GET("/transactions", cfg.TransactionHandler.List)
			protected.POST("/transactions", cfg.TransactionHandler.Checkout)
			protected.GET("/transactions/:id", cfg.TransactionHandler.Get)
		}
	}

	return r
}
