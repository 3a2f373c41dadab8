// internal/services/slug_guard.go
package services

import (
	"github.com/google/uuid"

	"github.com/garrybad/icon-kreatif-cms/internal/repository"
)

// SlugStatus is the tri-state outcome of a uniqueness check. Inconclusive
// means the store could not be reached: the caller must block the write
// rather than treat the slug as available, because a false "unique" here
// produces silent primary-key-like collisions.
type SlugStatus int

const (
	SlugUnique SlugStatus = iota
	SlugTaken
	SlugInconclusive
)

func (s SlugStatus) String() string {
	switch s {
	case SlugUnique:
		return "unique"
	case SlugTaken:
		return "taken"
	default:
		return "inconclusive"
	}
}

// SlugGuard checks candidate slugs against persisted product records before
// a create or update is allowed to commit.
type SlugGuard struct {
	products repository.ProductStore
}

func NewSlugGuard(products repository.ProductStore) *SlugGuard {
	return &SlugGuard{products: products}
}

// Check returns the availability of candidate. excludeID, when non-nil,
// exempts the product currently being edited so a no-op save of an
// unchanged slug succeeds. On query failure the status is SlugInconclusive
// and the store error is returned alongside it.
func (g *SlugGuard) Check(candidate string, excludeID *uuid.UUID) (SlugStatus, error) {
	count, err := g.products.CountBySlug(candidate, excludeID)
	if err != nil {
		return SlugInconclusive, err
	}

	if count > 0 {
		return SlugTaken, nil
	}
	return SlugUnique, nil
}
