package model

import (
	productModel "marketplace_api/internal/domain/product/model"
	baseModel "marketplace_api/pkg/model"
)

// Cart holds a user's pending selections. One cart per user; checkout reads
// from it but does not clear it.
type Cart struct {
	baseModel.BaseModel
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Details []CartDetail `gorm:"foreignKey:CartID" json:"details,omitempty"`
}

// CartDetail is one product line in a cart.
type CartDetail struct {
	baseModel.BaseModel
	CartID    string `gorm:"type:uuid;index:idx_cart_product,unique;not null" json:"cartId"`
	ProductID string `gorm:"type:uuid;index:idx_cart_product,unique;not null" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	Product *productModel.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
