package report

import (
	"marketplace_api/internal/domain/report/handler"
	"marketplace_api/internal/domain/report/repository"
	"marketplace_api/internal/domain/report/service"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "report" }

func (m *Module) Priority() int { return 85 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	reportService := service.NewReportService(repository.NewReportRepository(ctx.DB))
	h := handler.NewReportHandler(reportService)

	api := ctx.Router.Group("/api/v1")
	api.POST("/reports", middleware.AuthMiddleware(), h.CreateReport)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleAdmin, userModel.RoleSuperAdmin))
	admin.GET("/reports", h.ListReports)
	admin.PATCH("/reports/:id/read", h.MarkRead)

	return nil
}

func init() {
	registry.Register(&Module{})
}
