package model

import (
	baseModel "marketplace_api/pkg/model"
)

// ChatRoom connects a buyer with a shop's support.
type ChatRoom struct {
	baseModel.BaseModel
	UserID string `gorm:"type:uuid;index:idx_user_shop_room,unique;not null" json:"userId"`
	ShopID string `gorm:"type:uuid;index:idx_user_shop_room,unique;not null" json:"shopId"`

	Messages []ChatMessage `gorm:"foreignKey:RoomID" json:"messages,omitempty"`
}

// ChatMessage is one message inside a room.
type ChatMessage struct {
	baseModel.BaseModel
	RoomID   string `gorm:"type:uuid;index;not null" json:"roomId"`
	SenderID string `gorm:"type:uuid;not null" json:"senderId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	IsRead   bool   `gorm:"default:false" json:"isRead"`
}
