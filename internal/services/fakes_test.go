// internal/services/fakes_test.go
package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// fakeProductStore is an in-memory ProductStore with per-method error
// injection for exercising the guard failure paths.
type fakeProductStore struct {
	mu       sync.Mutex
	products []*models.Product

	insertErr      error
	updateErr      error
	countSlugErr   error
	countByCatErr  error
	insertCalls    int
	countSlugCalls int
}

func (f *fakeProductStore) Insert(product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products = append(f.products, product)
	return nil
}

func (f *fakeProductStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	for _, p := range f.products {
		if p.ID == id {
			if v, ok := fields["name"].(string); ok {
				p.Name = v
			}
			if v, ok := fields["slug"].(string); ok {
				p.Slug = v
			}
			if v, ok := fields["category"].(string); ok {
				p.Category = v
			}
			if v, ok := fields["price"].(float64); ok {
				p.Price = v
			}
			if v, ok := fields["images"].(pq.StringArray); ok {
				p.Images = v
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProductStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductStore) FindBySlug(slug string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductStore) List() ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) Search(params utils.PaginationParams) ([]models.Product, int64, error) {
	out, err := f.List()
	return out, int64(len(out)), err
}

func (f *fakeProductStore) CountBySlug(slug string, excludeID *uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.countSlugCalls++
	if f.countSlugErr != nil {
		return 0, f.countSlugErr
	}

	var count int64
	for _, p := range f.products {
		if p.Slug != slug {
			continue
		}
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeProductStore) CountByCategory(categoryName string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.countByCatErr != nil {
		return 0, f.countByCatErr
	}

	var count int64
	for _, p := range f.products {
		if p.Category == categoryName {
			count++
		}
	}
	return count, nil
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories []*models.Category

	findByNameErr error
	listErr       error
}

func (f *fakeCategoryStore) Insert(category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryStore) Rename(id uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.categories {
		if c.ID == id {
			c.Name = name
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCategoryStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryStore) FindByName(name string, excludeID *uuid.UUID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findByNameErr != nil {
		return nil, f.findByNameErr
	}

	for _, c := range f.categories {
		if c.Name != name {
			continue
		}
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryStore) List() ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]models.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

// fakeBlobStore records puts and deletes. Put fails for payloads equal to
// failOn, which lets a test fail one upload out of a concurrent batch.
type fakeBlobStore struct {
	mu      sync.Mutex
	stored  map[string][]byte
	deleted []string
	failOn  []byte
	puts    int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{stored: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts++
	if f.failOn != nil && string(data) == string(f.failOn) {
		return "", fmt.Errorf("simulated upload failure")
	}
	f.stored[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeBlobStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, key)
	delete(f.stored, key)
	return nil
}
