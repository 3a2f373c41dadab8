// internal/services/auth_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/garrybad/icon-kreatif-cms/internal/config"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService gates the dashboard behind a single operator account seeded
// from config. A successful login yields a JWT; the middleware turns it back
// into an explicit Session for the synchronizer.
type AuthService struct {
	cfg          *config.Config
	operatorID   uuid.UUID
	passwordHash []byte
}

func NewAuthService(cfg *config.Config) (*AuthService, error) {
	if cfg.Admin.Password == "" && cfg.Environment == "production" {
		return nil, errors.New("ADMIN_PASSWORD is required in production")
	}

	password := cfg.Admin.Password
	if password == "" {
		password = "admin" // development fallback
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		cfg:          cfg,
		operatorID:   uuid.New(),
		passwordHash: hash,
	}, nil
}

func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.cfg.Admin.Username {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(s.operatorID, username, s.cfg.JWT.AccessTokenTTL)
}
