package repository

import (
	"marketplace_api/internal/domain/user/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByActiveToken(token string) (*model.User, error)
	GetByResetToken(token string) (*model.User, error)
	GetList(offset, limit int, status, searchName string) ([]model.User, int64, error)
	Update(user *model.User) error
	Delete(user *model.User) error

	CreateSession(session *model.Session) error
	GetSession(id string) (*model.Session, error)
	DeleteSession(id string) error
	DeleteSessionsByUser(userID string) error

	CreateAddress(address *model.Address) error
	GetAddress(id string) (*model.Address, error)
	GetAddressesByUser(userID string) ([]model.Address, error)
	UpdateAddress(address *model.Address) error
	DeleteAddress(address *model.Address) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByActiveToken(token string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "active_token = ?", token).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByResetToken(token string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "reset_token = ?", token).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetList(offset, limit int, status, searchName string) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.db.Model(&model.User{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if searchName != "" {
		query = query.Where("display_name ILIKE ?", "%"+searchName+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *model.User) error {
	return r.db.Delete(user).Error
}

func (r *userRepository) CreateSession(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *userRepository) GetSession(id string) (*model.Session, error) {
	var session model.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *userRepository) DeleteSession(id string) error {
	return r.db.Delete(&model.Session{}, "id = ?", id).Error
}

func (r *userRepository) DeleteSessionsByUser(userID string) error {
	return r.db.Delete(&model.Session{}, "user_id = ?", userID).Error
}

func (r *userRepository) CreateAddress(address *model.Address) error {
	return r.db.Create(address).Error
}

func (r *userRepository) GetAddress(id string) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *userRepository) GetAddressesByUser(userID string) ([]model.Address, error) {
	var addresses []model.Address
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *userRepository) UpdateAddress(address *model.Address) error {
	return r.db.Save(address).Error
}

func (r *userRepository) DeleteAddress(address *model.Address) error {
	return r.db.Delete(address).Error
}
