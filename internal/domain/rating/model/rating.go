package model

import (
	baseModel "marketplace_api/pkg/model"
)

// Rating is one user's star review of a product. At most one per
// user+product pair.
type Rating struct {
	baseModel.BaseModel
	UserID    string `gorm:"type:uuid;index:idx_user_product_rating,unique;not null" json:"userId"`
	ProductID string `gorm:"type:uuid;index:idx_user_product_rating,unique;not null" json:"productId"`
	Stars     int    `gorm:"not null" json:"stars"`
	Comment   string `gorm:"type:text" json:"comment"`
}
