// internal/repository/category_store.go
package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
)

type GormCategoryStore struct {
	db *gorm.DB
}

func NewGormCategoryStore(db *gorm.DB) *GormCategoryStore {
	return &GormCategoryStore{db: db}
}

func (s *GormCategoryStore) Insert(category *models.Category) error {
	if err := s.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *GormCategoryStore) Rename(id uuid.UUID, name string) error {
	result := s.db.Model(&models.Category{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to rename category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormCategoryStore) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &category, nil
}

func (s *GormCategoryStore) FindByName(name string, excludeID *uuid.UUID) (*models.Category, error) {
	query := s.db.Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var category models.Category
	if err := query.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category by name: %w", err)
	}
	return &category, nil
}

func (s *GormCategoryStore) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
