// internal/services/slug_guard_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
)

func TestSlugGuardUnique(t *testing.T) {
	store := &fakeProductStore{}
	guard := NewSlugGuard(store)

	status, err := guard.Check("kaos-promo", nil)
	require.NoError(t, err)
	assert.Equal(t, SlugUnique, status)
}

func TestSlugGuardTaken(t *testing.T) {
	store := &fakeProductStore{}
	require.NoError(t, store.Insert(&models.Product{Name: "Kaos Promo", Slug: "kaos-promo"}))
	guard := NewSlugGuard(store)

	status, err := guard.Check("kaos-promo", nil)
	require.NoError(t, err)
	assert.Equal(t, SlugTaken, status)
}

func TestSlugGuardExcludesOwnRecord(t *testing.T) {
	store := &fakeProductStore{}
	existing := &models.Product{Name: "Kaos Promo", Slug: "kaos-promo"}
	require.NoError(t, store.Insert(existing))
	guard := NewSlugGuard(store)

	// A no-op save of an unchanged slug must pass the guard.
	status, err := guard.Check("kaos-promo", &existing.ID)
	require.NoError(t, err)
	assert.Equal(t, SlugUnique, status)

	other := uuid.New()
	status, err = guard.Check("kaos-promo", &other)
	require.NoError(t, err)
	assert.Equal(t, SlugTaken, status)
}

func TestSlugGuardInconclusiveOnQueryFailure(t *testing.T) {
	queryErr := errors.New("connection refused")
	store := &fakeProductStore{countSlugErr: queryErr}
	guard := NewSlugGuard(store)

	status, err := guard.Check("kaos-promo", nil)
	assert.Equal(t, SlugInconclusive, status)
	assert.ErrorIs(t, err, queryErr)
}
