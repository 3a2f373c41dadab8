// internal/services/category_guard_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
)

func TestCategoryGuardAllowsUnreferenced(t *testing.T) {
	store := &fakeProductStore{}
	guard := NewCategoryGuard(store)

	decision, err := guard.CanDelete(&models.Category{Name: "Banner"})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.ReferencingCount)
}

func TestCategoryGuardBlocksReferenced(t *testing.T) {
	store := &fakeProductStore{}
	require.NoError(t, store.Insert(&models.Product{Name: "A", Slug: "a", Category: "Banner"}))
	require.NoError(t, store.Insert(&models.Product{Name: "B", Slug: "b", Category: "Banner"}))
	require.NoError(t, store.Insert(&models.Product{Name: "C", Slug: "c", Category: "Stationery"}))
	guard := NewCategoryGuard(store)

	decision, err := guard.CanDelete(&models.Category{Name: "Banner"})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, int64(2), decision.ReferencingCount)
}

func TestCategoryGuardPropagatesQueryFailure(t *testing.T) {
	queryErr := errors.New("connection refused")
	store := &fakeProductStore{countByCatErr: queryErr}
	guard := NewCategoryGuard(store)

	_, err := guard.CanDelete(&models.Category{Name: "Banner"})
	assert.ErrorIs(t, err, queryErr)
}
