package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is read-only from the storefront's point of view; inventory
// management mutates it elsewhere.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string          `gorm:"not null;index;column:name" json:"name"`
	Description string          `gorm:"type:text;column:description" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;column:price" json:"price"`
	Stock       int             `gorm:"not null;default:0;column:stock" json:"stock"`
	Category    string          `gorm:"index;column:category" json:"category"`
	ImageURL    string          `gorm:"column:image_url" json:"image_url"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Product) TableName() string { return "product" }
