package handler

import (
	"net/http"

	"marketplace_api/internal/domain/discount/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	service service.DiscountService
}

func NewDiscountHandler(s service.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: s}
}

// CheckDiscount godoc
// @Summary Check whether a discount code is usable by the caller
// @Tags discounts
// @Produce json
// @Param code path string true "discount code"
// @Success 200 {object} response.Response
// @Router /discounts/check/{code} [get]
// @Security BearerAuth
func (h *DiscountHandler) CheckDiscount(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	discount, err := h.service.CheckUsable(claims.UserID, c.Param("code"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, discount)
}

// ListPlatformDiscounts godoc
// @Summary List platform-wide discounts
// @Tags discounts
// @Produce json
// @Param status query string false "status filter"
// @Success 200 {object} response.Response
// @Router /discounts [get]
func (h *DiscountHandler) ListPlatformDiscounts(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListPlatformDiscounts(c.Query("status"), &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// CreateShopDiscount godoc
// @Summary Create a discount for the shopkeeper's shop
// @Tags discounts
// @Accept json
// @Produce json
// @Param request body service.DiscountInput true "discount"
// @Success 201 {object} response.Response
// @Router /shopkeeper/discounts [post]
// @Security BearerAuth
func (h *DiscountHandler) CreateShopDiscount(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.DiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	discount, err := h.service.CreateShopDiscount(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, discount)
}

// ListShopDiscounts godoc
// @Summary List the shopkeeper's discounts
// @Tags discounts
// @Produce json
// @Param status query string false "status filter"
// @Success 200 {object} response.Response
// @Router /shopkeeper/discounts [get]
// @Security BearerAuth
func (h *DiscountHandler) ListShopDiscounts(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListShopDiscounts(claims.UserID, c.Query("status"), &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// DeactivateShopDiscount godoc
// @Summary Deactivate one of the shopkeeper's discounts
// @Tags discounts
// @Produce json
// @Param id path string true "discount id"
// @Success 200 {object} response.Response
// @Router /shopkeeper/discounts/{id} [delete]
// @Security BearerAuth
func (h *DiscountHandler) DeactivateShopDiscount(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.DeactivateShopDiscount(claims.UserID, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Discount deactivated", nil)
}

// CreatePlatformDiscount godoc
// @Summary Create a platform-wide discount (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.DiscountInput true "discount"
// @Success 201 {object} response.Response
// @Router /admin/discounts [post]
// @Security BearerAuth
func (h *DiscountHandler) CreatePlatformDiscount(c *gin.Context) {
	var input service.DiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	discount, err := h.service.CreatePlatformDiscount(input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, discount)
}
