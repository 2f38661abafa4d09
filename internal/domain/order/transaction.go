package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
)

const (
	// StatusPending is the only status this service writes; payment
	// processing advances it externally.
	StatusPending = "pending"
)

// Transaction is the immutable finalized order record. Nothing here mutates
// it after creation.
type Transaction struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID         `gorm:"index;not null" json:"user_id"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(10,2);not null;column:total_amount" json:"total_amount"`
	ShippingAddress string            `gorm:"not null;column:shipping_address" json:"shipping_address"`
	PaymentMethod   string            `gorm:"not null;column:payment_method" json:"payment_method"`
	Status          string            `gorm:"not null;default:pending;column:status" json:"status"`
	Items           []TransactionItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:TransactionID;references:ID" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Transaction) TableName() string { return "transaction" }

// TransactionItem is a value snapshot of a cart item at checkout time,
// decoupled from later product or cart mutation.
type TransactionItem struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TransactionID uuid.UUID        `gorm:"index;not null" json:"transaction_id"`
	ProductID     uuid.UUID        `gorm:"not null" json:"product_id"`
	Product       *catalog.Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Quantity      int              `gorm:"not null;column:quantity" json:"quantity"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null;column:price" json:"price"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (TransactionItem) TableName() string { return "transaction_item" }
