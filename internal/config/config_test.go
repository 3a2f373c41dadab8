// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5, cfg.Catalog.MinProductImages)
	assert.Equal(t, ImageStorageInline, cfg.Catalog.ImageStorage)
	assert.Equal(t, int64(10*1024*1024), cfg.Catalog.MaxImageSize)
	assert.NotEmpty(t, cfg.Catalog.DefaultCategories)
}

func TestLoadCatalogOverrides(t *testing.T) {
	t.Setenv("CATALOG_MIN_PRODUCT_IMAGES", "3")
	t.Setenv("CATALOG_DEFAULT_CATEGORIES", "Banner, Stationery ,Apparel")
	t.Setenv("CATALOG_MAX_IMAGE_SIZE_MB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Catalog.MinProductImages)
	assert.Equal(t, []string{"Banner", "Stationery", "Apparel"}, cfg.Catalog.DefaultCategories)
	assert.Equal(t, int64(2*1024*1024), cfg.Catalog.MaxImageSize)
}

func TestValidateRejectsUnknownStorageStrategy(t *testing.T) {
	t.Setenv("CATALOG_IMAGE_STORAGE", "ftp")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateS3RequiresCredentials(t *testing.T) {
	t.Setenv("CATALOG_IMAGE_STORAGE", "s3")
	t.Setenv("AWS_ACCESS_KEY_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PASSWORD", "pw")

	_, err := Load()
	assert.Error(t, err, "default JWT secret must be rejected in production")

	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("DB_PASSWORD", "")
	_, err = Load()
	assert.Error(t, err, "missing database password must be rejected in production")
}
