package order

import (
	discountRepo "marketplace_api/internal/domain/discount/repository"
	notificationRepo "marketplace_api/internal/domain/notification/repository"
	notificationService "marketplace_api/internal/domain/notification/service"
	"marketplace_api/internal/domain/order/handler"
	"marketplace_api/internal/domain/order/repository"
	"marketplace_api/internal/domain/order/service"
	productRepo "marketplace_api/internal/domain/product/repository"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	userRepo "marketplace_api/internal/domain/user/repository"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "order" }

func (m *Module) Priority() int { return 30 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	notifications := notificationService.NewNotificationService(
		notificationRepo.NewNotificationRepository(ctx.DB), ctx.Hub, ctx.Pool)

	orderService := service.NewOrderService(
		repository.NewOrderRepository(ctx.DB),
		productRepo.NewProductRepository(ctx.DB),
		discountRepo.NewDiscountRepository(ctx.DB),
		shopRepo.NewShopRepository(ctx.DB),
		userRepo.NewUserRepository(ctx.DB),
		notifications,
	)
	h := handler.NewOrderHandler(orderService)

	api := ctx.Router.Group("/api/v1")
	api.GET("/payment-methods", h.ListPaymentMethods)
	api.GET("/shipping-methods", h.ListShippingMethods)

	authed := api.Group("", middleware.AuthMiddleware())
	authed.POST("/orders", h.CreateOrder)
	authed.GET("/orders/:id", h.GetOrder)
	authed.POST("/orders/:id/complete", h.CompleteOrder)
	authed.GET("/users/orders", h.ListMyOrders)

	shopkeeper := api.Group("/shopkeeper",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleShopkeeper))
	shopkeeper.GET("/orders", h.ListShopOrders)
	shopkeeper.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	return nil
}

func init() {
	registry.Register(&Module{})
}
