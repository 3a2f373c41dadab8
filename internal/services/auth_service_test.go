// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrybad/icon-kreatif-cms/internal/config"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

func authConfig(env, username, password string) *config.Config {
	return &config.Config{
		Environment: env,
		Admin:       config.AdminConfig{Username: username, Password: password},
		JWT:         config.JWTConfig{AccessTokenTTL: 24},
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, err := NewAuthService(authConfig("development", "admin", "s3cret"))
	require.NoError(t, err)

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.NotEmpty(t, claims.OperatorID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, err := NewAuthService(authConfig("development", "admin", "s3cret"))
	require.NoError(t, err)

	_, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRequiresPasswordInProduction(t *testing.T) {
	_, err := NewAuthService(authConfig("production", "admin", ""))
	assert.Error(t, err)
}
