package notification

import (
	"marketplace_api/internal/domain/notification/handler"
	"marketplace_api/internal/domain/notification/repository"
	"marketplace_api/internal/domain/notification/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "notification" }

func (m *Module) Priority() int { return 60 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	notificationService := service.NewNotificationService(
		repository.NewNotificationRepository(ctx.DB), ctx.Hub, ctx.Pool)
	h := handler.NewNotificationHandler(notificationService, ctx.Hub)

	notifications := ctx.Router.Group("/api/v1/notifications", middleware.AuthMiddleware())
	notifications.GET("", h.List)
	notifications.GET("/unread-count", h.UnreadCount)
	notifications.PATCH("/:id/read", h.MarkRead)
	notifications.PATCH("/read-all", h.MarkAllRead)

	ctx.Router.GET("/api/v1/ws", middleware.AuthMiddleware(), h.Subscribe)

	return nil
}

func init() {
	registry.Register(&Module{})
}
