package handler

import (
	"io"
	"net/http"

	"marketplace_api/internal/domain/payment/gateway"
	"marketplace_api/internal/domain/payment/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type initiateRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// Initiate godoc
// @Summary Create a provider payment for an order
// @Tags payments
// @Accept json
// @Produce json
// @Param request body initiateRequest true "order"
// @Success 200 {object} response.Response
// @Router /payments/{provider}/initiate [post]
// @Security BearerAuth
func (h *PaymentHandler) Initiate(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)

		var req initiateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		payURL, err := h.service.Initiate(c.Request.Context(), claims.UserID, req.OrderID, provider)
		if err != nil {
			response.HandleError(c, err)
			return
		}
		response.Success(c, gin.H{"payUrl": payURL})
	}
}

// MomoCallback godoc
// @Summary Momo IPN endpoint
// @Tags payments
// @Accept json
// @Success 204
// @Router /payments/momo/callback [post]
func (h *PaymentHandler) MomoCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.service.HandleCallback(gateway.ProviderMomo, body); err != nil {
		c.Status(response.StatusOf(err))
		return
	}
	// Momo treats any 2xx as an acknowledgement.
	c.Status(http.StatusNoContent)
}

// ZaloPayCallback godoc
// @Summary ZaloPay callback endpoint
// @Tags payments
// @Accept json
// @Success 200
// @Router /payments/zalopay/callback [post]
func (h *PaymentHandler) ZaloPayCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": "unreadable body"})
		return
	}

	// ZaloPay retries on return_code <= 0; the body is always 200.
	if err := h.service.HandleCallback(gateway.ProviderZaloPay, body); err != nil {
		c.JSON(http.StatusOK, gin.H{"return_code": -1, "return_message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"return_code": 1, "return_message": "success"})
}

// CheckStatus godoc
// @Summary Query the provider for a payment's status
// @Tags payments
// @Produce json
// @Param orderId path string true "order id"
// @Success 200 {object} response.Response
// @Router /payments/{provider}/status/{orderId} [get]
// @Security BearerAuth
func (h *PaymentHandler) CheckStatus(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)

		status, err := h.service.CheckStatus(c.Request.Context(), claims.UserID, c.Param("orderId"), provider)
		if err != nil {
			response.HandleError(c, err)
			return
		}
		response.Success(c, status)
	}
}
