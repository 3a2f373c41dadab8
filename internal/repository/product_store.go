// internal/repository/product_store.go
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (s *GormProductStore) Insert(product *models.Product) error {
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (s *GormProductStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormProductStore) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (s *GormProductStore) FindBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product by slug: %w", err)
	}
	return &product, nil
}

func (s *GormProductStore) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *GormProductStore) Search(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, total, nil
}

func (s *GormProductStore) CountBySlug(slug string, excludeID *uuid.UUID) (int64, error) {
	query := s.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products by slug: %w", err)
	}
	return count, nil
}

func (s *GormProductStore) CountByCategory(categoryName string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("category = ?", categoryName).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}
	return count, nil
}
