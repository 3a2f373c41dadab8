// internal/repository/business_store.go
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
)

type GormBusinessStore struct {
	db *gorm.DB
}

func NewGormBusinessStore(db *gorm.DB) *GormBusinessStore {
	return &GormBusinessStore{db: db}
}

func (s *GormBusinessStore) Get() (*models.BusinessDetail, error) {
	var detail models.BusinessDetail
	if err := s.db.Limit(1).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch business details: %w", err)
	}
	return &detail, nil
}

func (s *GormBusinessStore) Upsert(detail *models.BusinessDetail) error {
	existing, err := s.Get()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.db.Create(detail).Error; err != nil {
			return fmt.Errorf("failed to insert business details: %w", err)
		}
		return nil
	}

	detail.ID = existing.ID
	detail.CreatedAt = existing.CreatedAt
	if err := s.db.Save(detail).Error; err != nil {
		return fmt.Errorf("failed to update business details: %w", err)
	}
	return nil
}
