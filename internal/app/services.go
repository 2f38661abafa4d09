package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/pkg/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type Services struct {
	LoginLimiter services.LoginLimiter
	Auth         services.AuthService
	Catalog      services.CatalogService
	Cart         services.CartService
	Checkout     services.CheckoutService
	Seed         services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	limiter := services.NewLoginLimiter(log, clients.Attempts, cfg.MaxLoginAttempts, cfg.LockoutWindow)

	return Services{
		LoginLimiter: limiter,
		Auth:         services.NewAuthService(db, log, repos.User, repos.UserToken, limiter, cfg.JWTSecretKey, cfg.TokenTTL),
		Catalog:      services.NewCatalogService(db, log, repos.Product, cfg.ProductsPerPage),
		Cart:         services.NewCartService(db, log, repos.Cart, repos.CartItem, repos.Product),
		Checkout:     services.NewCheckoutService(db, log, repos.Cart, repos.CartItem, repos.Transaction),
		Seed:         services.NewSeedService(db, log, repos.Product),
	}
}
