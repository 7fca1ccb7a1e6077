package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/martinmanurung/cinecheck/internal/domain/users"
	"github.com/martinmanurung/cinecheck/pkg/constant"
	"github.com/martinmanurung/cinecheck/pkg/response"
	"github.com/martinmanurung/cinecheck/pkg/validator"
	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateNewUser(ctx context.Context, user *users.User) error
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
	FindUserByID(ctx context.Context, userID string) (*users.User, error)
	SaveUser(ctx context.Context, user *users.User) error
}

type TokenIssuer interface {
	GenerateToken(userID, email, role string) (string, error)
}

type Usecase struct {
	repo       UserRepository
	jwtService TokenIssuer
	hashCost   int
	now        func() time.Time
}

func NewUsecase(repo UserRepository, jwtService TokenIssuer) *Usecase {
	return &Usecase{
		repo:       repo,
		jwtService: jwtService,
		hashCost:   bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u Usecase) Signup(ctx context.Context, payload users.SignupRequest) (*users.UserProfile, error) {
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if err := validator.Struct(&payload); err != nil {
		return nil, response.NewError(http.StatusBadRequest, "validation_failed", err.Error())
	}

	existing, err := u.repo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.NewError(http.StatusConflict, "email_already_exists", nil)
	}

	hashPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), u.hashCost)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	role := payload.Role
	if role == "" {
		role = constant.RoleUser
	}

	now := u.now()
	user := &users.User{
		ID:        "user_" + ksuid.New().String(),
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  string(hashPassword),
		Role:      role,
		Watchlist: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.repo.CreateNewUser(ctx, user); err != nil {
		// a concurrent signup won the unique email index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewError(http.StatusConflict, "email_already_exists", nil)
		}
		return nil, response.InternalServerError(err)
	}

	profile := user.Profile()
	return &profile, nil
}

func (u Usecase) Login(ctx context.Context, payload users.LoginRequest) (*users.LoginResponse, error) {
	user, err := u.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	if user == nil {
		return nil, response.NewError(http.StatusUnauthorized, "invalid_credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return nil, response.NewError(http.StatusUnauthorized, "invalid_credentials", nil)
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &users.LoginResponse{
		Token: token,
		User:  user.Profile(),
	}, nil
}

func (u Usecase) GetProfile(ctx context.Context, email string) (*users.UserProfile, error) {
	user, err := u.findUser(ctx, email)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// GetProfileByID backs /users/me, where the id comes from the access token.
func (u Usecase) GetProfileByID(ctx context.Context, userID string) (*users.UserProfile, error) {
	user, err := u.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}
	profile := user.Profile()
	return &profile, nil
}

func (u Usecase) UpdateProfile(ctx context.Context, email string, payload users.UpdateProfileRequest) (*users.UserProfile, error) {
	if err := validator.Struct(&payload); err != nil {
		return nil, response.NewError(http.StatusBadRequest, "validation_failed", err.Error())
	}

	user, err := u.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if payload.Username != nil {
		user.Username = *payload.Username
	}
	if payload.Bio != nil {
		user.Bio = payload.Bio
	}
	if payload.ProfilePicture != nil {
		user.ProfilePicture = payload.ProfilePicture
	}
	user.UpdatedAt = u.now()

	if err := u.repo.SaveUser(ctx, user); err != nil {
		return nil, response.InternalServerError(err)
	}

	profile := user.Profile()
	return &profile, nil
}

func (u Usecase) findUser(ctx context.Context, email string) (*users.User, error) {
	user, err := u.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}
	return user, nil
}
