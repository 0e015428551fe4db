package service

import (
	"marketplace_api/internal/domain/notification/model"
	"marketplace_api/internal/domain/notification/repository"
	"marketplace_api/internal/pkg/worker"
	"marketplace_api/internal/pkg/ws"
	"marketplace_api/pkg/utils"
)

type NotificationService interface {
	// Notify persists a notification for the assignee and pushes it to
	// their open websocket connections. Runs through the worker pool; the
	// caller never blocks on it.
	Notify(assigneeID, title, content, actions string)

	List(assigneeID string, p *utils.Pagination) (*utils.PageResult, error)
	UnreadCount(assigneeID string) (int64, error)
	MarkRead(id, assigneeID string) error
	MarkAllRead(assigneeID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	hub  *ws.Hub
	pool *worker.Pool
}

func NewNotificationService(repo repository.NotificationRepository, hub *ws.Hub, pool *worker.Pool) NotificationService {
	return &notificationService{
		repo: repo,
		hub:  hub,
		pool: pool,
	}
}

func (s *notificationService) Notify(assigneeID, title, content, actions string) {
	if assigneeID == "" {
		return
	}

	s.pool.Submit(worker.Task{
		Name: "notification:" + title,
		Run: func() error {
			notification := &model.Notification{
				AssigneeID:  assigneeID,
				Title:       title,
				Content:     content,
				ContentType: model.TypePersonal,
				Actions:     actions,
			}
			if err := s.repo.Create(notification); err != nil {
				return err
			}
			if s.hub != nil {
				s.hub.Push(assigneeID, notification)
			}
			return nil
		},
	})
}

func (s *notificationService) List(assigneeID string, p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	notifications, total, err := s.repo.GetByAssignee(assigneeID, offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(notifications, total, p)
	return &result, nil
}

func (s *notificationService) UnreadCount(assigneeID string) (int64, error) {
	return s.repo.CountUnread(assigneeID)
}

func (s *notificationService) MarkRead(id, assigneeID string) error {
	return s.repo.MarkRead(id, assigneeID)
}

func (s *notificationService) MarkAllRead(assigneeID string) error {
	return s.repo.MarkAllRead(assigneeID)
}
