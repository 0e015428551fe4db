package shop

import (
	notificationRepo "marketplace_api/internal/domain/notification/repository"
	notificationService "marketplace_api/internal/domain/notification/service"
	"marketplace_api/internal/domain/shop/handler"
	"marketplace_api/internal/domain/shop/repository"
	"marketplace_api/internal/domain/shop/service"
	userModel "marketplace_api/internal/domain/user/model"
	userRepo "marketplace_api/internal/domain/user/repository"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "shop" }

func (m *Module) Priority() int { return 15 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	notifications := notificationService.NewNotificationService(
		notificationRepo.NewNotificationRepository(ctx.DB), ctx.Hub, ctx.Pool)

	shopService := service.NewShopService(
		repository.NewShopRepository(ctx.DB),
		userRepo.NewUserRepository(ctx.DB),
		notifications,
	)
	h := handler.NewShopHandler(shopService)

	api := ctx.Router.Group("/api/v1")
	api.GET("/shops", h.ListShops)
	api.GET("/shops/:id", h.GetShop)

	authed := api.Group("", middleware.AuthMiddleware())
	authed.POST("/shops", h.CreateShop)

	shopkeeper := api.Group("/shopkeeper",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleShopkeeper))
	shopkeeper.GET("/shop", h.GetMyShop)
	shopkeeper.PUT("/shop", h.UpdateMyShop)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleAdmin, userModel.RoleSuperAdmin))
	admin.PATCH("/shops/:id/review", h.ReviewShop)

	return nil
}

func init() {
	registry.Register(&Module{})
}
