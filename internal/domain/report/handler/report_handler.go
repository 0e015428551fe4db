package handler

import (
	"net/http"

	"marketplace_api/internal/domain/report/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// CreateReport godoc
// @Summary File a report to the platform
// @Tags reports
// @Accept json
// @Produce json
// @Param request body service.CreateReportInput true "report"
// @Success 201 {object} response.Response
// @Router /reports [post]
// @Security BearerAuth
func (h *ReportHandler) CreateReport(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.CreateReport(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, report)
}

// ListReports godoc
// @Summary List filed reports
// @Tags reports
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/reports [get]
// @Security BearerAuth
func (h *ReportHandler) ListReports(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListReports(&p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// MarkRead godoc
// @Summary Mark a report as handled
// @Tags reports
// @Produce json
// @Param id path string true "report id"
// @Success 200 {object} response.Response
// @Router /admin/reports/{id}/read [patch]
// @Security BearerAuth
func (h *ReportHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkReportRead(c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Report marked as read", nil)
}
