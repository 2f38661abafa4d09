package app

import (
	"gorm.io/gorm"

	authrepo "github.com/yungbote/storefront-backend/internal/data/repos/auth"
	cartrepo "github.com/yungbote/storefront-backend/internal/data/repos/cart"
	catalogrepo "github.com/yungbote/storefront-backend/internal/data/repos/catalog"
	orderrepo "github.com/yungbote/storefront-backend/internal/data/repos/order"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type Repos struct {
	User        authrepo.UserRepo
	UserToken   authrepo.UserTokenRepo
	Product     catalogrepo.ProductRepo
	Cart        cartrepo.CartRepo
	CartItem    cartrepo.CartItemRepo
	Transaction orderrepo.TransactionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        authrepo.NewUserRepo(db, log),
		UserToken:   authrepo.NewUserTokenRepo(db, log),
		Product:     catalogrepo.NewProductRepo(db, log),
		Cart:        cartrepo.NewCartRepo(db, log),
		CartItem:    cartrepo.NewCartItemRepo(db, log),
		Transaction: orderrepo.NewTransactionRepo(db, log),
	}
}
