package wishlist

import (
	productRepo "marketplace_api/internal/domain/product/repository"
	"marketplace_api/internal/domain/wishlist/handler"
	"marketplace_api/internal/domain/wishlist/repository"
	"marketplace_api/internal/domain/wishlist/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "wishlist" }

func (m *Module) Priority() int { return 72 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	wishlistService := service.NewWishlistService(
		repository.NewWishlistRepository(ctx.DB),
		productRepo.NewProductRepository(ctx.DB),
	)
	h := handler.NewWishlistHandler(wishlistService)

	wishlist := ctx.Router.Group("/api/v1/wishlist", middleware.AuthMiddleware())
	wishlist.GET("", h.List)
	wishlist.POST("", h.Add)
	wishlist.DELETE("/:productId", h.Remove)

	return nil
}

func init() {
	registry.Register(&Module{})
}
