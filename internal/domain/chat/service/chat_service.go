package service

import (
	"errors"

	"marketplace_api/internal/domain/chat/model"
	"marketplace_api/internal/domain/chat/repository"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	"marketplace_api/internal/pkg/ws"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type ChatService interface {
	// OpenRoom returns the buyer's room with the shop, creating it on first
	// contact.
	OpenRoom(userID, shopID string) (*model.ChatRoom, error)
	// SendMessage posts into a room the sender belongs to and pushes it to
	// the counterpart's websocket.
	SendMessage(senderID, roomID, content string) (*model.ChatMessage, error)
	GetMessages(actorUserID, roomID string, p *utils.Pagination) (*utils.PageResult, error)
	ListMyRooms(userID string, p *utils.Pagination) (*utils.PageResult, error)
	ListShopRooms(actorUserID string, p *utils.Pagination) (*utils.PageResult, error)
	UnreadCount(userID string) (int64, error)
}

type chatService struct {
	repo  repository.ChatRepository
	shops shopRepo.ShopRepository
	hub   *ws.Hub
}

func NewChatService(repo repository.ChatRepository, shops shopRepo.ShopRepository, hub *ws.Hub) ChatService {
	return &chatService{repo: repo, shops: shops, hub: hub}
}

func (s *chatService) OpenRoom(userID, shopID string) (*model.ChatRoom, error) {
	if _, err := s.shops.GetByID(shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Shop not found")
		}
		return nil, err
	}
	return s.repo.GetOrCreateRoom(userID, shopID)
}

// membership resolves the counterpart user id when the actor belongs to the
// room, or fails.
func (s *chatService) membership(actorUserID string, room *model.ChatRoom) (string, error) {
	if room.UserID == actorUserID {
		shop, err := s.shops.GetByID(room.ShopID)
		if err != nil {
			return "", err
		}
		return shop.OwnerID, nil
	}

	shop, err := s.shops.GetByID(room.ShopID)
	if err != nil {
		return "", err
	}
	if shop.OwnerID != actorUserID {
		return "", apperrors.Forbidden("You are not a member of this room")
	}
	return room.UserID, nil
}

func (s *chatService) SendMessage(senderID, roomID, content string) (*model.ChatMessage, error) {
	room, err := s.repo.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Chat room not found")
		}
		return nil, err
	}

	recipientID, err := s.membership(senderID, room)
	if err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		RoomID:   roomID,
		SenderID: senderID,
		Content:  content,
	}
	message.CreatedBy = senderID

	if err := s.repo.CreateMessage(message); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Push(recipientID, message)
	}
	return message, nil
}

func (s *chatService) GetMessages(actorUserID, roomID string, p *utils.Pagination) (*utils.PageResult, error) {
	room, err := s.repo.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Chat room not found")
		}
		return nil, err
	}
	if _, err := s.membership(actorUserID, room); err != nil {
		return nil, err
	}

	offset, limit := p.GetPageOffset()
	messages, total, err := s.repo.GetMessages(roomID, offset, limit)
	if err != nil {
		return nil, err
	}

	// Opening the history counts as reading it.
	if err := s.repo.MarkMessagesRead(roomID, actorUserID); err != nil {
		return nil, err
	}

	result := utils.NewPageResult(messages, total, p)
	return &result, nil
}

func (s *chatService) ListMyRooms(userID string, p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	rooms, total, err := s.repo.GetRoomsByUser(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(rooms, total, p)
	return &result, nil
}

func (s *chatService) UnreadCount(userID string) (int64, error) {
	// A shopkeeper's unread count also covers their shop's rooms.
	shopID := ""
	if shop, err := s.shops.GetByOwnerID(userID); err == nil {
		shopID = shop.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return s.repo.CountUnread(userID, shopID)
}

func (s *chatService) ListShopRooms(actorUserID string, p *utils.Pagination) (*utils.PageResult, error) {
	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil {
		return nil, apperrors.NotAcceptable("You do not own a shop")
	}

	offset, limit := p.GetPageOffset()
	rooms, total, err := s.repo.GetRoomsByShop(shop.ID, offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(rooms, total, p)
	return &result, nil
}
