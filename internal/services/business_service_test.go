// internal/services/business_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
)

type fakeBusinessStore struct {
	detail *models.BusinessDetail
	getErr error
}

func (f *fakeBusinessStore) Get() (*models.BusinessDetail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.detail == nil {
		return nil, repository.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeBusinessStore) Upsert(detail *models.BusinessDetail) error {
	f.detail = detail
	return nil
}

func TestBusinessGetReturnsEmptyRecordWhenUnset(t *testing.T) {
	svc := NewBusinessService(&fakeBusinessStore{})

	detail, err := svc.Get()
	require.NoError(t, err)
	assert.Empty(t, detail.WhatsApp)
	assert.Empty(t, detail.Email)
}

func TestBusinessGetWrapsQueryFailure(t *testing.T) {
	svc := NewBusinessService(&fakeBusinessStore{getErr: errors.New("connection refused")})

	_, err := svc.Get()
	assert.True(t, catalogerr.IsDependency(err))
}

func TestBusinessSaveRoundTrips(t *testing.T) {
	store := &fakeBusinessStore{}
	svc := NewBusinessService(store)

	detail := &models.BusinessDetail{WhatsApp: "+6281234567890", Email: "hello@example.com"}
	require.NoError(t, svc.Save(testSession(), detail))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "+6281234567890", got.WhatsApp)
}
