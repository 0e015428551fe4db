package service

import (
	"os"
	"testing"
	"time"

	"marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/pkg/config"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/logger"
	baseModel "marketplace_api/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	config.GlobalConfig.JWT = config.JWTConfig{
		AccessSecret:  "test-access-secret-0123456789abcdef",
		RefreshSecret: "test-refresh-secret-0123456789abcdef",
		AccessExpire:  30,
		RefreshExpire: 720,
	}
	os.Exit(m.Run())
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByActiveToken(token string) (*model.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string) (*model.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetList(offset, limit int, status, searchName string) ([]model.User, int64, error) {
	args := m.Called(offset, limit, status, searchName)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateSession(session *model.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockUserRepository) GetSession(id string) (*model.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockUserRepository) DeleteSession(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteSessionsByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) CreateAddress(address *model.Address) error {
	args := m.Called(address)
	return args.Error(0)
}

func (m *MockUserRepository) GetAddress(id string) (*model.Address, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockUserRepository) GetAddressesByUser(userID string) ([]model.Address, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Address), args.Error(1)
}

func (m *MockUserRepository) UpdateAddress(address *model.Address) error {
	args := m.Called(address)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteAddress(address *model.Address) error {
	args := m.Called(address)
	return args.Error(0)
}

func hashedTestUser(id, username, password, status string) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.User{
		BaseModel:    baseModel.BaseModel{ID: id},
		Username:     username,
		Email:        username + "@example.com",
		HashPassword: string(hashed),
		DisplayName:  username,
		Role:         model.RoleUser,
		Status:       status,
	}
}

func TestRegister(t *testing.T) {
	input := RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	t.Run("Register success", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := service.Register(input)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, user.Status)
		assert.NotEmpty(t, user.ActiveToken)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte("password123")))
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate username rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").Return(hashedTestUser("user-1", "alice", "x", model.StatusActive), nil)

		_, err := service.Register(input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Username already exists")
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByEmail", "alice@example.com").Return(hashedTestUser("user-2", "bob", "x", model.StatusActive), nil)

		_, err := service.Register(input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email already exists")
	})
}

func TestActivateAccount(t *testing.T) {
	t.Run("Activate pending account", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		user := hashedTestUser("user-1", "alice", "x", model.StatusPending)
		user.ActiveToken = "token-1"
		repo.On("GetByActiveToken", "token-1").Return(user, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		err := service.ActivateAccount("token-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, user.Status)
		assert.Empty(t, user.ActiveToken)
	})

	t.Run("Already activated account rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByActiveToken", "token-1").
			Return(hashedTestUser("user-1", "alice", "x", model.StatusActive), nil)

		err := service.ActivateAccount("token-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already activated")
	})

	t.Run("Unknown token rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByActiveToken", "nope").Return(nil, gorm.ErrRecordNotFound)

		err := service.ActivateAccount("nope")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotAcceptable))
	})
}

func TestLogin(t *testing.T) {
	t.Run("Login by username success", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").
			Return(hashedTestUser("user-1", "alice", "password123", model.StatusActive), nil)
		repo.On("CreateSession", mock.AnythingOfType("*model.Session")).Return(nil)

		result, err := service.Login(LoginInput{Account: "alice", Password: "password123"}, "test-agent", "127.0.0.1")

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.NotEmpty(t, result.SessionID)
		repo.AssertExpectations(t)
	})

	t.Run("Login falls back to email lookup", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByEmail", "alice@example.com").
			Return(hashedTestUser("user-1", "alice", "password123", model.StatusActive), nil)
		repo.On("CreateSession", mock.AnythingOfType("*model.Session")).Return(nil)

		result, err := service.Login(LoginInput{Account: "alice@example.com", Password: "password123"}, "", "")

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("Wrong password rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").
			Return(hashedTestUser("user-1", "alice", "password123", model.StatusActive), nil)

		_, err := service.Login(LoginInput{Account: "alice", Password: "wrong"}, "", "")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
		repo.AssertNotCalled(t, "CreateSession", mock.Anything)
	})

	t.Run("Pending account cannot log in", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").
			Return(hashedTestUser("user-1", "alice", "password123", model.StatusPending), nil)

		_, err := service.Login(LoginInput{Account: "alice", Password: "password123"}, "", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not activated")
	})

	t.Run("Deactivated account forbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "alice").
			Return(hashedTestUser("user-1", "alice", "password123", model.StatusDeactivated), nil)

		_, err := service.Login(LoginInput{Account: "alice", Password: "password123"}, "", "")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run("Unknown account gets the same error as a bad password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByEmail", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Login(LoginInput{Account: "ghost", Password: "password123"}, "", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("Expired session is gone", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		user := hashedTestUser("user-1", "alice", "password123", model.StatusActive)
		repo.On("GetByUsername", "alice").Return(user, nil)
		repo.On("CreateSession", mock.AnythingOfType("*model.Session")).Return(nil)

		result, err := service.Login(LoginInput{Account: "alice", Password: "password123"}, "", "")
		assert.NoError(t, err)

		repo.On("GetSession", result.SessionID).Return(&model.Session{
			ID:        result.SessionID,
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		_, err = service.RefreshToken(result.RefreshToken)

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindGone))
	})

	t.Run("Live session reissues a pair", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		user := hashedTestUser("user-1", "alice", "password123", model.StatusActive)
		repo.On("GetByUsername", "alice").Return(user, nil)
		repo.On("CreateSession", mock.AnythingOfType("*model.Session")).Return(nil)

		result, err := service.Login(LoginInput{Account: "alice", Password: "password123"}, "", "")
		assert.NoError(t, err)

		repo.On("GetSession", result.SessionID).Return(&model.Session{
			ID:        result.SessionID,
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		repo.On("GetByID", "user-1").Return(user, nil)

		pair, err := service.RefreshToken(result.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Equal(t, result.SessionID, pair.SessionID)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		_, err := service.RefreshToken("not-a-jwt")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("Change password revokes all sessions", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByID", "user-1").
			Return(hashedTestUser("user-1", "alice", "oldpassword", model.StatusActive), nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)
		repo.On("DeleteSessionsByUser", "user-1").Return(nil)

		err := service.ChangePassword("user-1", ChangePasswordInput{
			OldPassword: "oldpassword",
			NewPassword: "newpassword1",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Wrong old password rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByID", "user-1").
			Return(hashedTestUser("user-1", "alice", "oldpassword", model.StatusActive), nil)

		err := service.ChangePassword("user-1", ChangePasswordInput{
			OldPassword: "wrong",
			NewPassword: "newpassword1",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Old password is incorrect")
		repo.AssertNotCalled(t, "Update", mock.Anything)
		repo.AssertNotCalled(t, "DeleteSessionsByUser", mock.Anything)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("Valid token resets and revokes sessions", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		user := hashedTestUser("user-1", "alice", "oldpassword", model.StatusActive)
		user.ResetToken = "reset-1"
		repo.On("GetByResetToken", "reset-1").Return(user, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)
		repo.On("DeleteSessionsByUser", "user-1").Return(nil)

		err := service.ResetPassword("reset-1", "newpassword1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown token rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetByResetToken", "nope").Return(nil, gorm.ErrRecordNotFound)

		err := service.ResetPassword("nope", "newpassword1")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotAcceptable))
	})

	t.Run("Empty token rejected without a lookup", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		err := service.ResetPassword("", "newpassword1")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "GetByResetToken", mock.Anything)
	})
}

func TestAddressOwnership(t *testing.T) {
	t.Run("Foreign address update forbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetAddress", "addr-1").Return(&model.Address{
			BaseModel: baseModel.BaseModel{ID: "addr-1"},
			UserID:    "user-1",
		}, nil)

		_, err := service.UpdateAddress("user-2", "addr-1", AddressInput{
			Recipient: "Alice",
			Phone:     "0900000000",
			Street:    "1 Main St",
			City:      "HCMC",
		})

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
		repo.AssertNotCalled(t, "UpdateAddress", mock.Anything)
	})

	t.Run("Foreign address delete forbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, nil)

		repo.On("GetAddress", "addr-1").Return(&model.Address{
			BaseModel: baseModel.BaseModel{ID: "addr-1"},
			UserID:    "user-1",
		}, nil)

		err := service.DeleteAddress("user-2", "addr-1")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
		repo.AssertNotCalled(t, "DeleteAddress", mock.Anything)
	})
}
