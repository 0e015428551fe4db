package model

import (
	baseModel "marketplace_api/pkg/model"
)

// Notification content types.
const (
	TypePersonal  = "Personal"
	TypeBroadcast = "Broadcast"
)

// Notification is the fan-out target of order/payment/refund mutations.
// Actions carries a front-end deep link (e.g. /shopkeeper/orders/<id>).
type Notification struct {
	baseModel.BaseModel
	AssigneeID  string `gorm:"type:uuid;index;not null" json:"assigneeId"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	ContentType string `gorm:"type:varchar(32);default:'Personal'" json:"contentType"`
	Actions     string `gorm:"type:varchar(512)" json:"actions"`
	Image       string `gorm:"type:varchar(512)" json:"image,omitempty"`
	IsRead      bool   `gorm:"default:false" json:"isRead"`
}
