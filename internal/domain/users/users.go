package users

import (
	"time"

	"gorm.io/datatypes"
)

// User is an account plus its saved-movies list. Email is the lookup key used by
// the watchlist and profile endpoints.
type User struct {
	ID             string                      `json:"id" gorm:"primaryKey;type:varchar(40)"`
	Username       string                      `json:"username" gorm:"type:varchar(100);not null"`
	Email          string                      `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password       string                      `json:"-" gorm:"type:varchar(255);not null"`
	Role           string                      `json:"role" gorm:"type:varchar(16);not null"`
	ProfilePicture *string                     `json:"profile_picture" gorm:"type:varchar(512)"`
	Bio            *string                     `json:"bio" gorm:"type:text"`
	Watchlist      datatypes.JSONSlice[string] `json:"watchlist"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time                   `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=3,max=100"`
	Bio            *string `json:"bio" validate:"omitempty,max=2000"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

type UserProfile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture *string   `json:"profile_picture"`
	Bio            *string   `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// Profile projects the public fields of u.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		CreatedAt:      u.CreatedAt,
	}
}
