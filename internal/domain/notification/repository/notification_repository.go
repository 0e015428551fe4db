package repository

import (
	"marketplace_api/internal/domain/notification/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	GetByID(id string) (*model.Notification, error)
	GetByAssignee(assigneeID string, offset, limit int) ([]model.Notification, int64, error)
	CountUnread(assigneeID string) (int64, error)
	MarkRead(id, assigneeID string) error
	MarkAllRead(assigneeID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) GetByID(id string) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetByAssignee(assigneeID string, offset, limit int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	query := r.db.Model(&model.Notification{}).Where("assignee_id = ?", assigneeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(assigneeID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("assignee_id = ? AND is_read = false", assigneeID).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(id, assigneeID string) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ? AND assignee_id = ?", id, assigneeID).
		UpdateColumn("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(assigneeID string) error {
	return r.db.Model(&model.Notification{}).
		Where("assignee_id = ? AND is_read = false", assigneeID).
		UpdateColumn("is_read", true).Error
}
