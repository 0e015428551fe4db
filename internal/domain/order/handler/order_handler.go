package handler

import (
	"net/http"

	"marketplace_api/internal/domain/order/model"
	"marketplace_api/internal/domain/order/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

type updateStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

// CreateOrder godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body service.CreateOrderInput true "order"
// @Success 201 {object} response.Response
// @Router /orders [post]
// @Security BearerAuth
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.CreateOrder(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrder godoc
// @Summary Get one order
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} response.Response
// @Router /orders/{id} [get]
// @Security BearerAuth
func (h *OrderHandler) GetOrder(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	order, err := h.service.GetOrderByID(claims.UserID, claims.Role, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, order)
}

// ListMyOrders godoc
// @Summary List the authenticated user's orders
// @Tags orders
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/orders [get]
// @Security BearerAuth
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetOrdersByUser(claims.UserID, &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// ListShopOrders godoc
// @Summary List orders of the shopkeeper's shop
// @Tags orders
// @Produce json
// @Param status query string false "order status filter"
// @Success 200 {object} response.Response
// @Router /shopkeeper/orders [get]
// @Security BearerAuth
func (h *OrderHandler) ListShopOrders(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetOrdersByShopkeeper(claims.UserID, c.Query("status"), &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateOrderStatus godoc
// @Summary Move an order along the status workflow
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param request body updateStatusRequest true "target status"
// @Success 200 {object} response.Response
// @Router /shopkeeper/orders/{id}/status [patch]
// @Security BearerAuth
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.UpdateOrderStatus(claims.UserID, c.Param("id"), model.OrderStatus(req.OrderStatus))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Order status updated", order)
}

// CompleteOrder godoc
// @Summary Buyer confirms receipt of the order
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} response.Response
// @Router /orders/{id}/complete [post]
// @Security BearerAuth
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	order, err := h.service.CompleteOrder(claims.UserID, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Order completed", order)
}

// ListPaymentMethods godoc
// @Summary List payment methods
// @Tags orders
// @Produce json
// @Success 200 {object} response.Response
// @Router /payment-methods [get]
func (h *OrderHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.service.ListPaymentMethods()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, methods)
}

// ListShippingMethods godoc
// @Summary List shipping methods
// @Tags orders
// @Produce json
// @Success 200 {object} response.Response
// @Router /shipping-methods [get]
func (h *OrderHandler) ListShippingMethods(c *gin.Context) {
	methods, err := h.service.ListShippingMethods()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, methods)
}
