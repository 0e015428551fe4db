package rating

import (
	"marketplace_api/internal/domain/rating/handler"
	"marketplace_api/internal/domain/rating/repository"
	"marketplace_api/internal/domain/rating/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "rating" }

func (m *Module) Priority() int { return 70 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	ratingService := service.NewRatingService(repository.NewRatingRepository(ctx.DB))
	h := handler.NewRatingHandler(ratingService)

	api := ctx.Router.Group("/api/v1")
	api.GET("/products/:id/ratings", h.GetProductRatings)
	api.POST("/ratings", middleware.AuthMiddleware(), h.Rate)

	return nil
}

func init() {
	registry.Register(&Module{})
}
