package db

import (
	"fmt"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Catalog
		&types.Product{},

		// Cart (mutable, per user)
		&types.Cart{},
		&types.CartItem{},

		// Checkout output (immutable)
		&types.Transaction{},
		&types.TransactionItem{},
	)
}

// EnsureStoreIndexes adds the constraints AutoMigrate cannot express: the
// one-cart-per-user and one-item-per-(cart,product) guarantees are enforced
// in the database, not just in service code.
func EnsureStoreIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_user_id
		ON cart(user_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_cart_user_id: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_item_cart_product
		ON cart_item(cart_id, product_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_cart_item_cart_product: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transaction_user_created
		ON "transaction"(user_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_transaction_user_created: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_user_token_expires_at
		ON user_token(expires_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_user_token_expires_at: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureStoreIndexes(s.db); err != nil {
		s.log.Error("Store index migration failed", "error", err)
		return err
	}
	return nil
}
