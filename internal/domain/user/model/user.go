package model

import (
	"time"

	baseModel "marketplace_api/pkg/model"
)

// System roles.
const (
	RoleUser       = "User"
	RoleShopkeeper = "Shopkeeper"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// User account statuses.
const (
	StatusPending     = "Pending" // registered, not yet activated
	StatusActive      = "Active"
	StatusDeactivated = "Deactivated"
)

// User is a marketplace account. One row serves buyers, shopkeepers and
// admins; the Role column decides what the route guards allow.
type User struct {
	baseModel.BaseModel
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashPassword string `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string `gorm:"type:varchar(100)" json:"displayName"`
	Avatar       string `gorm:"type:varchar(512)" json:"avatar"`
	Role         string `gorm:"type:varchar(32);default:'User'" json:"role"`
	Status       string `gorm:"type:varchar(32);default:'Pending'" json:"status"`
	ActiveToken  string `gorm:"type:varchar(128)" json:"-"`
	ResetToken   string `gorm:"type:varchar(128)" json:"-"`
}

// Session is the server-side record backing a refresh token. Deleting the
// row revokes the token even while it is cryptographically valid; the auth
// middleware answers such tokens with 410 Gone.
type Session struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"userId"`
	UserAgent string    `gorm:"type:varchar(512)" json:"userAgent"`
	ClientIP  string    `gorm:"type:varchar(64)" json:"clientIp"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Address is a delivery address owned by a user, referenced at checkout.
type Address struct {
	baseModel.BaseModel
	UserID    string `gorm:"type:uuid;index;not null" json:"userId"`
	Recipient string `gorm:"type:varchar(100);not null" json:"recipient"`
	Phone     string `gorm:"type:varchar(32);not null" json:"phone"`
	Street    string `gorm:"type:varchar(255);not null" json:"street"`
	Ward      string `gorm:"type:varchar(100)" json:"ward"`
	District  string `gorm:"type:varchar(100)" json:"district"`
	City      string `gorm:"type:varchar(100);not null" json:"city"`
	IsDefault bool   `gorm:"default:false" json:"isDefault"`
}
