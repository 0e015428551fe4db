package discount

import (
	"marketplace_api/internal/domain/discount/handler"
	"marketplace_api/internal/domain/discount/repository"
	"marketplace_api/internal/domain/discount/service"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "discount" }

func (m *Module) Priority() int { return 22 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	discountService := service.NewDiscountService(
		repository.NewDiscountRepository(ctx.DB),
		shopRepo.NewShopRepository(ctx.DB),
	)
	h := handler.NewDiscountHandler(discountService)

	api := ctx.Router.Group("/api/v1")
	api.GET("/discounts", h.ListPlatformDiscounts)

	authed := api.Group("", middleware.AuthMiddleware())
	authed.GET("/discounts/check/:code", h.CheckDiscount)

	shopkeeper := api.Group("/shopkeeper",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleShopkeeper))
	shopkeeper.POST("/discounts", h.CreateShopDiscount)
	shopkeeper.GET("/discounts", h.ListShopDiscounts)
	shopkeeper.DELETE("/discounts/:id", h.DeactivateShopDiscount)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleAdmin, userModel.RoleSuperAdmin))
	admin.POST("/discounts", h.CreatePlatformDiscount)

	return nil
}

func init() {
	registry.Register(&Module{})
}
