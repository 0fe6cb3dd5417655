package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// User represents a storefront account.
type User struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Email         string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	EmailVerified bool           `gorm:"column:email_verified;not null"`
	Image         *string        `gorm:"column:image"`
	Phone         *string        `gorm:"column:phone"`
	Role          enums.UserRole `gorm:"column:role;not null"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
