package refund

import (
	notificationRepo "marketplace_api/internal/domain/notification/repository"
	notificationService "marketplace_api/internal/domain/notification/service"
	orderRepo "marketplace_api/internal/domain/order/repository"
	"marketplace_api/internal/domain/refund/handler"
	"marketplace_api/internal/domain/refund/repository"
	"marketplace_api/internal/domain/refund/service"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "refund" }

func (m *Module) Priority() int { return 50 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	notifications := notificationService.NewNotificationService(
		notificationRepo.NewNotificationRepository(ctx.DB), ctx.Hub, ctx.Pool)

	refundService := service.NewRefundService(
		repository.NewRefundRepository(ctx.DB),
		orderRepo.NewOrderRepository(ctx.DB),
		shopRepo.NewShopRepository(ctx.DB),
		notifications,
	)
	h := handler.NewRefundHandler(refundService)

	api := ctx.Router.Group("/api/v1")

	authed := api.Group("", middleware.AuthMiddleware())
	authed.POST("/refunds", h.CreateRefund)
	authed.GET("/refunds/:id", h.GetRefund)
	authed.GET("/users/refunds", h.ListMyRefunds)

	shopkeeper := api.Group("/shopkeeper",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleShopkeeper))
	shopkeeper.GET("/refunds", h.ListShopRefunds)
	shopkeeper.PATCH("/refunds/:id/status", h.UpdateRefundStatus)
	shopkeeper.DELETE("/refunds/:id", h.DeleteRefund)

	return nil
}

func init() {
	registry.Register(&Module{})
}
