package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/pkg/constant"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

type MyClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	SignatureKey []byte
	Expiry       time.Duration
}

func NewJWTService(secretKey string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTService{
		SignatureKey: []byte(secretKey),
		Expiry:       expiry,
	}
}

func (j *JWTService) GenerateToken(userID, email, role string) (string, error) {
	if userID == "" {
		return "", errors.New("user_id cannot be empty")
	}

	if len(j.SignatureKey) == 0 {
		return "", errors.New("signature_key cannot be empty")
	}

	now := time.Now()
	claims := MyClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.SignatureKey)
}

func (j *JWTService) ValidateToken(tokenStr string) (*MyClaims, error) {
	// Remove "Bearer " prefix if exists
	if len(tokenStr) > 7 && tokenStr[:7] == "Bearer " {
		tokenStr = tokenStr[7:]
	}

	token, err := jwt.ParseWithClaims(tokenStr, &MyClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("invalid signing method")
		}
		return j.SignatureKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*MyClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func (j *JWTService) JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(echo.HeaderAuthorization)
			if token == "" {
				return response.Error(c, 401, "unauthorized", "missing authorization token")
			}

			claims, err := j.ValidateToken(token)
			if err != nil {
				return response.Error(c, 401, "unauthorized", err.Error())
			}

			c.Set(string(constant.CtxKeyUserID), claims.UserID)
			c.Set(string(constant.CtxKeyUserEmail), claims.Email)
			c.Set(string(constant.CtxKeyUserRole), claims.Role)
			return next(c)
		}
	}
}

// GetUserIDFromContext extracts user_id from echo context
func GetUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get(string(constant.CtxKeyUserID)).(string)
	if !ok || userID == "" {
		return "", errors.New("user_id not found in context")
	}
	return userID, nil
}
