package model

import (
	productModel "marketplace_api/internal/domain/product/model"
	baseModel "marketplace_api/pkg/model"
)

// WishListItem marks a product a user wants to keep an eye on.
type WishListItem struct {
	baseModel.BaseModel
	UserID    string `gorm:"type:uuid;index:idx_user_product_wish,unique;not null" json:"userId"`
	ProductID string `gorm:"type:uuid;index:idx_user_product_wish,unique;not null" json:"productId"`

	Product *productModel.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
