package media

import (
	"marketplace_api/internal/domain/media/handler"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "media" }

func (m *Module) Priority() int { return 80 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	h := handler.NewMediaHandler()

	ctx.Router.POST("/api/v1/media/upload", middleware.AuthMiddleware(), h.Upload)

	return nil
}

func init() {
	registry.Register(&Module{})
}
