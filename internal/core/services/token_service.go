package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zaminwale/crm_backend/internal/core/domain"
	portssvc "github.com/zaminwale/crm_backend/internal/core/ports/services"
	"github.com/zaminwale/crm_backend/internal/middleware"
	"github.com/zaminwale/crm_backend/internal/platform/config"
)

// tokenService issues signed JWTs for authenticated users.
type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new TokenService from app configuration.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: cfg.JWTSecret,
		expiry: cfg.JWTExpiryDuration,
		issuer: cfg.JWTIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateToken returns a signed JWT for the user and its expiry time.
func (s *tokenService) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiry)

	claims := middleware.AuthClaims{
		Name: user.Name,
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
