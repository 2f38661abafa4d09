package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
)

// Cart is the per-user mutable pending order. One row per user, created
// lazily and cleared (never deleted) after checkout.
type Cart struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:total_amount" json:"total_amount"`
	Items       []CartItem      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CartID;references:ID" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Cart) TableName() string { return "cart" }

// Total folds the current items; total_amount is only ever persisted as the
// result of this fold, never patched incrementally.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartItem keys on (cart_id, product_id); Price is a snapshot of the product
// price at the time the item was added or last updated.
type CartItem struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CartID    uuid.UUID        `gorm:"uniqueIndex:idx_cart_item_cart_product;not null" json:"cart_id"`
	ProductID uuid.UUID        `gorm:"uniqueIndex:idx_cart_item_cart_product;not null" json:"product_id"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Quantity  int              `gorm:"not null;column:quantity" json:"quantity"`
	Price     decimal.Decimal  `gorm:"type:decimal(10,2);not null;column:price" json:"price"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_item" }

func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
