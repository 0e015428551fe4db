package model

import (
	baseModel "marketplace_api/pkg/model"
)

// Report is a user-to-platform complaint or suggestion, reviewed by admins.
type Report struct {
	baseModel.BaseModel
	SenderID string  `gorm:"type:uuid;index;not null" json:"senderId"`
	Title    string  `gorm:"type:varchar(255);not null" json:"title"`
	Body     string  `gorm:"type:text;not null" json:"body"`
	Image    *string `gorm:"type:varchar(512)" json:"image,omitempty"`
	IsRead   bool    `gorm:"default:false" json:"isRead"`
}
