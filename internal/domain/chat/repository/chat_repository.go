package repository

import (
	"errors"

	"marketplace_api/internal/domain/chat/model"

	"gorm.io/gorm"
)

type ChatRepository interface {
	GetOrCreateRoom(userID, shopID string) (*model.ChatRoom, error)
	GetRoom(roomID string) (*model.ChatRoom, error)
	GetRoomsByUser(userID string, offset, limit int) ([]model.ChatRoom, int64, error)
	GetRoomsByShop(shopID string, offset, limit int) ([]model.ChatRoom, int64, error)
	CreateMessage(message *model.ChatMessage) error
	GetMessages(roomID string, offset, limit int) ([]model.ChatMessage, int64, error)
	// MarkMessagesRead flags every message in the room not sent by readerID.
	MarkMessagesRead(roomID, readerID string) error
	// CountUnread counts unread messages addressed to the user across every
	// room they belong to, on either side of the counter.
	CountUnread(userID, shopID string) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) GetOrCreateRoom(userID, shopID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.First(&room, "user_id = ? AND shop_id = ?", userID, shopID).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room = model.ChatRoom{UserID: userID, ShopID: shopID}
	if err := r.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) GetRoom(roomID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.db.First(&room, "id = ?", roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) GetRoomsByUser(userID string, offset, limit int) ([]model.ChatRoom, int64, error) {
	return r.listRooms("user_id = ?", userID, offset, limit)
}

func (r *chatRepository) GetRoomsByShop(shopID string, offset, limit int) ([]model.ChatRoom, int64, error) {
	return r.listRooms("shop_id = ?", shopID, offset, limit)
}

func (r *chatRepository) listRooms(cond, value string, offset, limit int) ([]model.ChatRoom, int64, error) {
	var rooms []model.ChatRoom
	var total int64

	query := r.db.Model(&model.ChatRoom{}).Where(cond, value)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (r *chatRepository) CreateMessage(message *model.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *chatRepository) GetMessages(roomID string, offset, limit int) ([]model.ChatMessage, int64, error) {
	var messages []model.ChatMessage
	var total int64

	query := r.db.Model(&model.ChatMessage{}).Where("room_id = ?", roomID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *chatRepository) MarkMessagesRead(roomID, readerID string) error {
	return r.db.Model(&model.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = false", roomID, readerID).
		UpdateColumn("is_read", true).Error
}

func (r *chatRepository) CountUnread(userID, shopID string) (int64, error) {
	query := r.db.Model(&model.ChatMessage{}).
		Joins("JOIN chat_rooms ON chat_rooms.id = chat_messages.room_id").
		Where("chat_messages.sender_id <> ? AND chat_messages.is_read = false", userID)
	if shopID != "" {
		query = query.Where("chat_rooms.user_id = ? OR chat_rooms.shop_id = ?", userID, shopID)
	} else {
		query = query.Where("chat_rooms.user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
