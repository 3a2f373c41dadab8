// internal/repository/repository.go
package repository

import (
	"errors"

	"github.com/google/uuid"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// ErrNotFound distinguishes "no row" from a query error. Guards depend on
// that distinction: a failed query must never be read as an empty result.
var ErrNotFound = errors.New("record not found")

// ProductStore is the persistence collaborator for the products table.
type ProductStore interface {
	Insert(product *models.Product) error
	Update(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*models.Product, error)
	FindBySlug(slug string) (*models.Product, error)
	List() ([]models.Product, error)
	Search(params utils.PaginationParams) ([]models.Product, int64, error)
	// CountBySlug counts products whose slug equals the candidate, optionally
	// excluding one product id (the record currently being edited).
	CountBySlug(slug string, excludeID *uuid.UUID) (int64, error)
	// CountByCategory counts products referencing a category name.
	CountByCategory(categoryName string) (int64, error)
}

// CategoryStore is the persistence collaborator for the categories table.
type CategoryStore interface {
	Insert(category *models.Category) error
	Rename(id uuid.UUID, name string) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*models.Category, error)
	// FindByName does a case-sensitive exact match, optionally excluding one
	// category id (the record currently being renamed).
	FindByName(name string, excludeID *uuid.UUID) (*models.Category, error)
	List() ([]models.Category, error)
}

// BusinessStore is the persistence collaborator for the singleton
// business-contact record.
type BusinessStore interface {
	Get() (*models.BusinessDetail, error)
	Upsert(detail *models.BusinessDetail) error
}
