package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/storefront-backend/internal/domain/user"
)

// UserToken is the persisted side of a bearer credential. A fresh login
// revokes every other row for the same user.
type UserToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"index;not null" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Token     string     `gorm:"uniqueIndex;not null;column:token" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (UserToken) TableName() string { return "user_token" }

func (t *UserToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
