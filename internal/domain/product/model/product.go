package model

import (
	"encoding/json"

	baseModel "marketplace_api/pkg/model"
)

// Product statuses.
const (
	ProductActive      = "Active"
	ProductDeactivated = "Deactivated"
)

// Product is a shop listing with a shared mutable stock counter. Stock only
// changes through the conditional decrement in the repository, never by
// read-then-write.
type Product struct {
	baseModel.BaseModel
	ShopID      string         `gorm:"type:uuid;index;not null" json:"shopId"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Status      string         `gorm:"type:varchar(32);default:'Active'" json:"status"`
	Images      json.RawMessage `gorm:"type:jsonb" json:"images"`

	Categories []Category `gorm:"many2many:product_categories" json:"categories,omitempty"`
}

// Category groups products for browsing.
type Category struct {
	baseModel.BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Image       string `gorm:"type:varchar(512)" json:"image"`
}
