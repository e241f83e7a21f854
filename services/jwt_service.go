package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fitgear/fitgear-api/models"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "fitgear-api"

// UserClaims are the JWT claims for storefront customers.
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Principal converts verified claims into a request principal.
func (c *UserClaims) Principal() models.Principal {
	return models.Principal{UserID: c.UserID, Email: c.Email, Name: c.Name}
}

// JWTService handles JWT token generation and verification
type JWTService struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

var jwtService *JWTService

// NewJWTService builds a signer for secretKey. A zero expiry means 24 hours.
func NewJWTService(secretKey string, expiry time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTService{secretKey: []byte(secretKey), expiry: expiry, now: time.Now}, nil
}

// InitJWTService installs the process-wide JWT service.
func InitJWTService(secretKey string, expiry time.Duration) error {
	svc, err := NewJWTService(secretKey, expiry)
	if err != nil {
		return err
	}
	jwtService = svc
	return nil
}

// GetJWTService returns the initialized JWT service
func GetJWTService() *JWTService {
	return jwtService
}

func (j *JWTService) Expiry() time.Duration {
	return j.expiry
}

// Generate signs a token for user.
func (j *JWTService) Generate(user *models.User) (string, error) {
	if user == nil || user.Email == "" {
		return "", errors.New("user and email cannot be empty")
	}

	now := j.now()
	claims := UserClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims if it is valid and unexpired.
func (j *JWTService) Verify(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || claims.Email == "" {
		return nil, errors.New("token missing required claims")
	}
	return claims, nil
}
