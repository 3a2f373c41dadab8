// internal/services/category_guard.go
package services

import (
	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
)

// DeleteDecision reports whether a category may be deleted. When not
// allowed, ReferencingCount carries the number of referencing products for
// operator messaging.
type DeleteDecision struct {
	Allowed          bool
	ReferencingCount int64
}

// CategoryGuard checks whether any product still references a category
// before its deletion is permitted. The guard and the delete are separate
// steps: the store offers no conditional delete, so there is an accepted
// check-then-act window under the single-operator model.
type CategoryGuard struct {
	products repository.ProductStore
}

func NewCategoryGuard(products repository.ProductStore) *CategoryGuard {
	return &CategoryGuard{products: products}
}

func (g *CategoryGuard) CanDelete(category *models.Category) (DeleteDecision, error) {
	count, err := g.products.CountByCategory(category.Name)
	if err != nil {
		return DeleteDecision{}, err
	}

	if count > 0 {
		return DeleteDecision{Allowed: false, ReferencingCount: count}, nil
	}
	return DeleteDecision{Allowed: true}, nil
}
