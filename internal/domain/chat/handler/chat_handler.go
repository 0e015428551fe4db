package handler

import (
	"net/http"

	"marketplace_api/internal/domain/chat/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(s service.ChatService) *ChatHandler {
	return &ChatHandler{service: s}
}

type openRoomRequest struct {
	ShopID string `json:"shopId" binding:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// OpenRoom godoc
// @Summary Open (or fetch) the chat room with a shop
// @Tags chat
// @Accept json
// @Produce json
// @Param request body openRoomRequest true "shop"
// @Success 200 {object} response.Response
// @Router /chat/rooms [post]
// @Security BearerAuth
func (h *ChatHandler) OpenRoom(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var req openRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.service.OpenRoom(claims.UserID, req.ShopID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, room)
}

// SendMessage godoc
// @Summary Send a message into a room
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "room id"
// @Param request body sendMessageRequest true "message"
// @Success 201 {object} response.Response
// @Router /chat/rooms/{id}/messages [post]
// @Security BearerAuth
func (h *ChatHandler) SendMessage(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.service.SendMessage(claims.UserID, c.Param("id"), req.Content)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, message)
}

// GetMessages godoc
// @Summary Read a room's message history
// @Tags chat
// @Produce json
// @Param id path string true "room id"
// @Success 200 {object} response.Response
// @Router /chat/rooms/{id}/messages [get]
// @Security BearerAuth
func (h *ChatHandler) GetMessages(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetMessages(claims.UserID, c.Param("id"), &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// ListMyRooms godoc
// @Summary List the authenticated user's chat rooms
// @Tags chat
// @Produce json
// @Success 200 {object} response.Response
// @Router /chat/rooms [get]
// @Security BearerAuth
func (h *ChatHandler) ListMyRooms(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListMyRooms(claims.UserID, &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// UnreadCount godoc
// @Summary Count unread chat messages across all rooms
// @Tags chat
// @Produce json
// @Success 200 {object} response.Response
// @Router /chat/unread-count [get]
// @Security BearerAuth
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	count, err := h.service.UnreadCount(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// ListShopRooms godoc
// @Summary List the shopkeeper's chat rooms
// @Tags chat
// @Produce json
// @Success 200 {object} response.Response
// @Router /shopkeeper/chat/rooms [get]
// @Security BearerAuth
func (h *ChatHandler) ListShopRooms(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListShopRooms(claims.UserID, &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}
