// internal/services/preview_registry_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRegistryLifecycle(t *testing.T) {
	registry := NewPreviewRegistry()

	token := registry.Issue([]byte("pixels"), "image/png")
	require.Equal(t, 1, registry.Outstanding())

	data, contentType, ok := registry.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, []byte("pixels"), data)
	assert.Equal(t, "image/png", contentType)

	registry.Revoke(token)
	assert.Zero(t, registry.Outstanding())

	_, _, ok = registry.Resolve(token)
	assert.False(t, ok)

	// Double revoke is a no-op.
	registry.Revoke(token)
	assert.Zero(t, registry.Outstanding())
}

func TestPreviewRegistryTokensAreDistinct(t *testing.T) {
	registry := NewPreviewRegistry()

	a := registry.Issue([]byte("a"), "image/jpeg")
	b := registry.Issue([]byte("a"), "image/jpeg")
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, registry.Outstanding())
}
