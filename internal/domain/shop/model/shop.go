package model

import (
	baseModel "marketplace_api/pkg/model"
)

// Shop statuses.
const (
	ShopPending     = "Pending"
	ShopActive      = "Active"
	ShopDeactivated = "Deactivated"
	ShopRejected    = "Rejected"
)

// Shop is a storefront owned by a shopkeeper. New shops start Pending until
// an admin approves them.
type Shop struct {
	baseModel.BaseModel
	OwnerID     string `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(512)" json:"image"`
	Status      string `gorm:"type:varchar(32);default:'Pending'" json:"status"`
}
