package product

import (
	"marketplace_api/internal/domain/product/handler"
	"marketplace_api/internal/domain/product/repository"
	"marketplace_api/internal/domain/product/service"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "product" }

func (m *Module) Priority() int { return 20 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	productService := service.NewProductService(
		repository.NewProductRepository(ctx.DB),
		shopRepo.NewShopRepository(ctx.DB),
	)
	h := handler.NewProductHandler(productService)

	api := ctx.Router.Group("/api/v1")
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories", h.ListCategories)

	shopkeeper := api.Group("/shopkeeper",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleShopkeeper))
	shopkeeper.POST("/products", h.CreateProduct)
	shopkeeper.PUT("/products/:id", h.UpdateProduct)
	shopkeeper.DELETE("/products/:id", h.DeleteProduct)
	shopkeeper.PATCH("/products/:id/status", h.SetProductStatus)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleAdmin, userModel.RoleSuperAdmin))
	admin.GET("/products", h.ListAllProducts)
	admin.POST("/categories", h.CreateCategory)

	return nil
}

func init() {
	registry.Register(&Module{})
}
