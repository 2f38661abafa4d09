package app

import (
	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Product     *httpH.ProductHandler
	Cart        *httpH.CartHandler
	Transaction *httpH.TransactionHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(services.Auth),
		User:        httpH.NewUserHandler(services.Auth),
		Product:     httpH.NewProductHandler(services.Catalog),
		Cart:        httpH.NewCartHandler(services.Cart),
		Transaction: httpH.NewTransactionHandler(services.Checkout),
	}
}
