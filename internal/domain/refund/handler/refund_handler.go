package handler

import (
	"net/http"

	"marketplace_api/internal/domain/refund/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RefundHandler struct {
	service service.RefundService
}

func NewRefundHandler(s service.RefundService) *RefundHandler {
	return &RefundHandler{service: s}
}

// CreateRefund godoc
// @Summary Request a refund for an order line
// @Tags refunds
// @Accept json
// @Produce json
// @Param request body service.CreateRefundInput true "refund request"
// @Success 201 {object} response.Response
// @Router /refunds [post]
// @Security BearerAuth
func (h *RefundHandler) CreateRefund(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.CreateRefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.CreateRefund(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, request)
}

// GetRefund godoc
// @Summary Get one refund request
// @Tags refunds
// @Produce json
// @Param id path string true "refund id"
// @Success 200 {object} response.Response
// @Router /refunds/{id} [get]
// @Security BearerAuth
func (h *RefundHandler) GetRefund(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	request, err := h.service.GetRefundByID(claims.UserID, claims.Role, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, request)
}

// ListMyRefunds godoc
// @Summary List the authenticated user's refund requests
// @Tags refunds
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/refunds [get]
// @Security BearerAuth
func (h *RefundHandler) ListMyRefunds(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetRefundsByUser(claims.UserID, &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// ListShopRefunds godoc
// @Summary List refund requests against the shopkeeper's shop
// @Tags refunds
// @Produce json
// @Param status query string false "refund status filter"
// @Success 200 {object} response.Response
// @Router /shopkeeper/refunds [get]
// @Security BearerAuth
func (h *RefundHandler) ListShopRefunds(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetRefundsByShopkeeper(claims.UserID, c.Query("status"), &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateRefundStatus godoc
// @Summary Move a refund request along its workflow
// @Tags refunds
// @Accept json
// @Produce json
// @Param id path string true "refund id"
// @Param request body service.UpdateRefundInput true "target status"
// @Success 200 {object} response.Response
// @Router /shopkeeper/refunds/{id}/status [patch]
// @Security BearerAuth
func (h *RefundHandler) UpdateRefundStatus(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.UpdateRefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.UpdateRefundStatus(claims.UserID, c.Param("id"), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Refund status updated", request)
}

// DeleteRefund godoc
// @Summary Soft delete a refund request
// @Tags refunds
// @Produce json
// @Param id path string true "refund id"
// @Success 200 {object} response.Response
// @Router /shopkeeper/refunds/{id} [delete]
// @Security BearerAuth
func (h *RefundHandler) DeleteRefund(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.DeleteRefund(claims.UserID, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Refund request deleted", nil)
}
