package model

import (
	"encoding/json"
	"time"

	baseModel "marketplace_api/pkg/model"
)

// Discount statuses.
const (
	DiscountActive   = "Active"
	DiscountInactive = "Inactive"
)

// Discount is a percentage-off code with a usage cap. ShopID nil means
// platform-wide. Invariant: Used never exceeds Quantity; enforced by the
// conditional Consume update, not by read-then-write.
type Discount struct {
	baseModel.BaseModel
	Code               string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Description        string          `gorm:"type:varchar(255)" json:"description"`
	Campaign           string          `gorm:"type:varchar(100)" json:"campaign"`
	DiscountPercentage int             `gorm:"not null" json:"discountPercentage"`
	Quantity           *int            `json:"quantity,omitempty"`
	Used               int             `gorm:"not null;default:0" json:"used"`
	Status             string          `gorm:"type:varchar(32);default:'Active'" json:"status"`
	Conditions         json.RawMessage `gorm:"type:jsonb" json:"conditions,omitempty"`
	ValidUntil         time.Time       `gorm:"not null" json:"validUntil"`
	ShopID             *string         `gorm:"type:uuid;index" json:"shopId,omitempty"`
}

// UserDiscount records a user's consumption of a discount, preventing the
// same user from applying the same code twice.
type UserDiscount struct {
	baseModel.BaseModel
	UserID     string `gorm:"type:uuid;index:idx_user_discount,unique;not null" json:"userId"`
	DiscountID string `gorm:"type:uuid;index:idx_user_discount,unique;not null" json:"discountId"`
	Used       bool   `gorm:"default:true" json:"used"`
}
