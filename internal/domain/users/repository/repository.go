package repository

import (
	"context"
	"errors"

	"github.com/martinmanurung/cinecheck/internal/domain/users"
	"gorm.io/gorm"
)

type User struct {
	db *gorm.DB
}

func NewUser(db *gorm.DB) *User {
	return &User{db: db}
}

func (u User) CreateNewUser(ctx context.Context, user *users.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

// FindUserByEmail returns nil, nil when no user has the email
func (u User) FindUserByEmail(ctx context.Context, email string) (*users.User, error) {
	var user users.User
	err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u User) FindUserByID(ctx context.Context, userID string) (*users.User, error) {
	var user users.User
	err := u.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// SaveUser upserts the whole record by id
func (u User) SaveUser(ctx context.Context, user *users.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}
