package service

import (
	"context"
	"errors"
	"time"

	"marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/domain/user/repository"
	"marketplace_api/internal/pkg/mailer"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/logger"
	"marketplace_api/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"marketplace_api/internal/pkg/config"
)

type RegisterInput struct {
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
}

type LoginInput struct {
	Account  string `json:"account" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken          string     `json:"accessToken"`
	AccessTokenExpiresAt *time.Time `json:"accessTokenExpiresAt"`
	RefreshToken         string     `json:"refreshToken"`
	SessionID            string     `json:"sessionId"`
}

type LoginResult struct {
	User *model.User `json:"user"`
	TokenPair
}

type UpdateProfileInput struct {
	DisplayName *string `json:"displayName"`
	Avatar      *string `json:"avatar"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type AddressInput struct {
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Street    string `json:"street" binding:"required"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	City      string `json:"city" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

type UserService interface {
	Register(input RegisterInput) (*model.User, error)
	ActivateAccount(token string) error
	Login(input LoginInput, userAgent, clientIP string) (*LoginResult, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	Logout(sessionID string) error

	GetProfile(userID string) (*model.User, error)
	UpdateProfile(userID string, input UpdateProfileInput) (*model.User, error)
	ChangePassword(userID string, input ChangePasswordInput) error
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error

	ListUsers(p *utils.Pagination, status, search string) (*utils.PageResult, error)
	SetUserStatus(userID, status string) error

	CreateAddress(userID string, input AddressInput) (*model.Address, error)
	ListAddresses(userID string) ([]model.Address, error)
	UpdateAddress(userID, addressID string, input AddressInput) (*model.Address, error)
	DeleteAddress(userID, addressID string) error
}

type userService struct {
	repo repository.UserRepository
	rdb  *redis.Client
}

func NewUserService(repo repository.UserRepository, rdb *redis.Client) UserService {
	return &userService{repo: repo, rdb: rdb}
}

func (s *userService) Register(input RegisterInput) (*model.User, error) {
	if _, err := s.repo.GetByUsername(input.Username); err == nil {
		return nil, apperrors.NotAcceptable("Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(input.Email); err == nil {
		return nil, apperrors.NotAcceptable("Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	activeToken, err := utils.RandomHex(32)
	if err != nil {
		return nil, err
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		HashPassword: string(hashed),
		DisplayName:  displayName,
		Role:         model.RoleUser,
		Status:       model.StatusPending,
		ActiveToken:  activeToken,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if mailer.GlobalMailer != nil {
		go func() {
			if err := mailer.GlobalMailer.SendActivationMail(user.Email, user.Username, activeToken); err != nil {
				logger.Log.Error("send activation mail", zap.String("email", user.Email), zap.Error(err))
			}
		}()
	}

	return user, nil
}

func (s *userService) ActivateAccount(token string) error {
	user, err := s.repo.GetByActiveToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotAcceptable("Invalid activation token")
		}
		return err
	}
	if user.Status != model.StatusPending {
		return apperrors.NotAcceptable("Account is already activated")
	}

	user.Status = model.StatusActive
	user.ActiveToken = ""
	return s.repo.Update(user)
}

func (s *userService) Login(input LoginInput, userAgent, clientIP string) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(input.Account)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.repo.GetByEmail(input.Account)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	switch user.Status {
	case model.StatusPending:
		return nil, apperrors.NotAcceptable("Account is not activated")
	case model.StatusDeactivated:
		return nil, apperrors.Forbidden("Account is deactivated")
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: userAgent,
		ClientIP:  clientIP,
		ExpiresAt: time.Now().Add(time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Hour),
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}
	s.cacheSession(session)

	pair, err := s.issueTokens(user, session.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, TokenPair: *pair}, nil
}

func (s *userService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired refresh token")
	}

	session, err := s.repo.GetSession(claims.SessionID)
	if err != nil {
		return nil, apperrors.Gone("Session no longer exists")
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.Gone("Session has expired")
	}

	user, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("User no longer exists")
	}
	if user.Status != model.StatusActive {
		return nil, apperrors.Forbidden("Account is not active")
	}

	return s.issueTokens(user, session.ID)
}

func (s *userService) Logout(sessionID string) error {
	if s.rdb != nil {
		_ = s.rdb.Del(context.Background(), middleware.SessionKey(sessionID)).Err()
	}
	return s.repo.DeleteSession(sessionID)
}

func (s *userService) GetProfile(userID string) (*model.User, error) {
	return s.repo.GetByID(userID)
}

func (s *userService) UpdateProfile(userID string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	user.UpdatedBy = userID

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(userID string, input ChangePasswordInput) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(input.OldPassword)); err != nil {
		return apperrors.NotAcceptable("Old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.HashPassword = string(hashed)

	if err := s.repo.Update(user); err != nil {
		return err
	}
	// Changing the password revokes every other device.
	return s.repo.DeleteSessionsByUser(userID)
}

func (s *userService) ForgotPassword(email string) error {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the email is registered.
			return nil
		}
		return err
	}

	resetToken, err := utils.RandomHex(32)
	if err != nil {
		return err
	}
	user.ResetToken = resetToken
	if err := s.repo.Update(user); err != nil {
		return err
	}

	if mailer.GlobalMailer != nil {
		go func() {
			if err := mailer.GlobalMailer.SendResetPasswordMail(user.Email, user.Username, resetToken); err != nil {
				logger.Log.Error("send reset mail", zap.String("email", user.Email), zap.Error(err))
			}
		}()
	}
	return nil
}

func (s *userService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return apperrors.NotAcceptable("Invalid reset token")
	}

	var user model.User
	found, err := s.findByResetToken(token, &user)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotAcceptable("Invalid reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.HashPassword = string(hashed)
	user.ResetToken = ""

	if err := s.repo.Update(&user); err != nil {
		return err
	}
	return s.repo.DeleteSessionsByUser(user.ID)
}

func (s *userService) ListUsers(p *utils.Pagination, status, search string) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	users, total, err := s.repo.GetList(offset, limit, status, search)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(users, total, p)
	return &result, nil
}

func (s *userService) SetUserStatus(userID, status string) error {
	if status != model.StatusActive && status != model.StatusDeactivated {
		return apperrors.BadRequest("Invalid status")
	}

	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	user.Status = status
	if err := s.repo.Update(user); err != nil {
		return err
	}

	if status == model.StatusDeactivated {
		return s.repo.DeleteSessionsByUser(userID)
	}
	return nil
}

func (s *userService) CreateAddress(userID string, input AddressInput) (*model.Address, error) {
	address := &model.Address{
		UserID:    userID,
		Recipient: input.Recipient,
		Phone:     input.Phone,
		Street:    input.Street,
		Ward:      input.Ward,
		District:  input.District,
		City:      input.City,
		IsDefault: input.IsDefault,
	}
	address.CreatedBy = userID

	if err := s.repo.CreateAddress(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *userService) ListAddresses(userID string) ([]model.Address, error) {
	return s.repo.GetAddressesByUser(userID)
}

func (s *userService) UpdateAddress(userID, addressID string, input AddressInput) (*model.Address, error) {
	address, err := s.repo.GetAddress(addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, apperrors.Forbidden("Permission denied")
	}

	address.Recipient = input.Recipient
	address.Phone = input.Phone
	address.Street = input.Street
	address.Ward = input.Ward
	address.District = input.District
	address.City = input.City
	address.IsDefault = input.IsDefault
	address.UpdatedBy = userID

	if err := s.repo.UpdateAddress(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *userService) DeleteAddress(userID, addressID string) error {
	address, err := s.repo.GetAddress(addressID)
	if err != nil {
		return err
	}
	if address.UserID != userID {
		return apperrors.Forbidden("Permission denied")
	}
	return s.repo.DeleteAddress(address)
}

func (s *userService) issueTokens(user *model.User, sessionID string) (*TokenPair, error) {
	accessToken, accessExpire, err := utils.GenerateAccessToken(user.ID, user.Role, sessionID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := utils.GenerateRefreshToken(user.ID, user.Role, sessionID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessExpire,
		RefreshToken:         refreshToken,
		SessionID:            sessionID,
	}, nil
}

func (s *userService) cacheSession(session *model.Session) {
	if s.rdb == nil {
		return
	}
	err := s.rdb.Set(context.Background(),
		middleware.SessionKey(session.ID), session.UserID,
		time.Until(session.ExpiresAt)).Err()
	if err != nil {
		logger.Log.Warn("cache session", zap.Error(err))
	}
}

func (s *userService) findByResetToken(token string, out *model.User) (bool, error) {
	user, err := s.repo.GetByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	*out = *user
	return true, nil
}
