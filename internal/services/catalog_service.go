// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
	"github.com/garrybad/icon-kreatif-cms/internal/config"
	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
	"github.com/garrybad/icon-kreatif-cms/internal/slug"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// CatalogService orchestrates every catalog write: it runs the slug codec
// and uniqueness guard for product writes, the reference guard for category
// deletes, and the asset pipeline for image changes, then issues the store
// call. On any step failure no partial record is written.
type CatalogService struct {
	products      repository.ProductStore
	categories    repository.CategoryStore
	slugGuard     *SlugGuard
	categoryGuard *CategoryGuard
	cfg           config.CatalogConfig
}

type ProductInput struct {
	Name           string            `json:"name" validate:"required,min=2,max=255"`
	Slug           string            `json:"slug,omitempty"` // optional manual override, re-validated
	Category       string            `json:"category" validate:"required"`
	Price          float64           `json:"price" validate:"min=0"`
	Description    string            `json:"description,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

func NewCatalogService(
	products repository.ProductStore,
	categories repository.CategoryStore,
	cfg config.CatalogConfig,
) *CatalogService {
	return &CatalogService{
		products:      products,
		categories:    categories,
		slugGuard:     NewSlugGuard(products),
		categoryGuard: NewCategoryGuard(products),
		cfg:           cfg,
	}
}

// CreateProduct derives and guards the slug, commits the staged images, then
// inserts the record. The configured image minimum applies at creation only.
func (s *CatalogService) CreateProduct(sess Session, input *ProductInput, pipeline *AssetPipeline) (*models.Product, error) {
	attempt := beginWrite("create_product", logrus.Fields{"operator": sess.Username, "name": input.Name})
	attempt.to(StateValidating)

	if err := s.validateProductInput(input); err != nil {
		attempt.to(StateRejected)
		return nil, err
	}

	productSlug, err := s.resolveSlug(input, nil)
	if err != nil {
		attempt.to(StateRejected)
		return nil, err
	}

	if pipeline.Pending() < s.cfg.MinProductImages {
		attempt.to(StateRejected)
		return nil, catalogerr.Validation("images",
			fmt.Sprintf("at least %d product images are required, got %d",
				s.cfg.MinProductImages, pipeline.Pending()))
	}

	attempt.to(StateSubmitting)

	refs, err := pipeline.Commit(productSlug, nil)
	if err != nil {
		attempt.to(StateFailed)
		return nil, err
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Slug:           productSlug,
		Category:       input.Category,
		Price:          input.Price,
		Description:    input.Description,
		Features:       pq.StringArray(compactStrings(input.Features)),
		Specifications: models.StringMap(compactSpecs(input.Specifications)),
		Images:         pq.StringArray(refs),
	}

	if err := s.products.Insert(product); err != nil {
		attempt.to(StateFailed)
		return nil, catalogerr.Dependency("insert product", err)
	}

	attempt.to(StateCommitted)
	return product, nil
}

// UpdateProduct runs the same validation sequence as create, excluding the
// product's own id from the uniqueness check and skipping the image minimum.
// retainedRefs is the subset of previously-persisted refs the operator kept,
// in the order last seen in the editor; staged images follow them.
func (s *CatalogService) UpdateProduct(sess Session, id uuid.UUID, input *ProductInput, pipeline *AssetPipeline, retainedRefs []string) (*models.Product, error) {
	attempt := beginWrite("update_product", logrus.Fields{"operator": sess.Username, "product_id": id})
	attempt.to(StateValidating)

	existing, err := s.products.FindByID(id)
	if err != nil {
		attempt.to(StateRejected)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, catalogerr.Dependency("fetch product", err)
	}

	if err := s.validateProductInput(input); err != nil {
		attempt.to(StateRejected)
		return nil, err
	}

	productSlug, err := s.resolveSlug(input, &existing.ID)
	if err != nil {
		attempt.to(StateRejected)
		return nil, err
	}

	attempt.to(StateSubmitting)

	refs, err := pipeline.Commit(productSlug, retainedRefs)
	if err != nil {
		attempt.to(StateFailed)
		return nil, err
	}

	fields := map[string]interface{}{
		"name":           strings.TrimSpace(input.Name),
		"slug":           productSlug,
		"category":       input.Category,
		"price":          input.Price,
		"description":    input.Description,
		"features":       pq.StringArray(compactStrings(input.Features)),
		"specifications": models.StringMap(compactSpecs(input.Specifications)),
		"images":         pq.StringArray(refs),
		"updated_at":     time.Now(),
	}

	if err := s.products.Update(id, fields); err != nil {
		attempt.to(StateFailed)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, catalogerr.Dependency("update product", err)
	}

	return s.reloadProduct(id, attempt)
}

// DeleteProduct delegates straight to the store; products have no dependents.
func (s *CatalogService) DeleteProduct(sess Session, id uuid.UUID) error {
	attempt := beginWrite("delete_product", logrus.Fields{"operator": sess.Username, "product_id": id})
	attempt.to(StateValidating)
	attempt.to(StateSubmitting)

	if err := s.products.Delete(id); err != nil {
		attempt.to(StateFailed)
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return catalogerr.Dependency("delete product", err)
	}

	attempt.to(StateCommitted)
	return nil
}

// CreateCategory inserts a category after a case-sensitive name-uniqueness
// check. A failed existence query blocks the write, it is never read as
// "name is free".
func (s *CatalogService) CreateCategory(sess Session, name string) (*models.Category, error) {
	attempt := beginWrite("create_category", logrus.Fields{"operator": sess.Username, "name": name})
	attempt.to(StateValidating)

	name = strings.TrimSpace(name)
	if name == "" {
		attempt.to(StateRejected)
		return nil, catalogerr.Validation("name", "category name is required")
	}

	if err := s.checkCategoryName(name, nil); err != nil {
		attempt.to(StateRejected)
		return nil, err
	}

	attempt.to(StateSubmitting)

	category := &models.Category{Name: name}
	if err := s.categories.Insert(category); err != nil {
		attempt.to(StateFailed)
		return nil, catalogerr.Dependency("insert category", err)
	}

	attempt.to(StateCommitted)
	return category, nil
}

// RenameCategory is the only category mutation besides create and delete.
func (s *CatalogService) RenameCategory(sess Session, id uuid.UUID, name string) (*models.Category, error) {
	attempt := beginWrite("rename_category", logrus.Fields{"operator": sess.Username, "category_id": id})
	attempt.to(StateValidating)

	name = strings.TrimSpace(name)
	if name == "" {
		attempt.to(StateRejected)
		return nil, catalogerr.Validation("name", "category name is required")
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		attempt.to(StateRejected)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, catalogerr.Dependency("fetch category", err)
	}

	if err := s.checkCategoryName(name, &category.ID); err != nil {
		attempt.to(StateRejected)
		return nil, err
	}

	attempt.to(StateSubmitting)

	if err := s.categories.Rename(id, name); err != nil {
		attempt.to(StateFailed)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, catalogerr.Dependency("rename category", err)
	}

	attempt.to(StateCommitted)
	category.Name = name
	return category, nil
}

// DeleteCategory runs the reference guard to completion and only then issues
// the delete. The two steps are deliberately separate: the store has no
// conditional delete, so the window between them is an accepted race under
// the single-operator model.
func (s *CatalogService) DeleteCategory(sess Session, id uuid.UUID) error {
	attempt := beginWrite("delete_category", logrus.Fields{"operator": sess.Username, "category_id": id})
	attempt.to(StateValidating)

	category, err := s.categories.FindByID(id)
	if err != nil {
		attempt.to(StateRejected)
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return catalogerr.Dependency("fetch category", err)
	}

	decision, err := s.categoryGuard.CanDelete(category)
	if err != nil {
		attempt.to(StateRejected)
		return catalogerr.Dependency("check category references", err)
	}

	if !decision.Allowed {
		attempt.to(StateRejected)
		return catalogerr.Conflict("category", category.Name,
			fmt.Sprintf("still referenced by %d product(s)", decision.ReferencingCount))
	}

	attempt.to(StateSubmitting)

	if err := s.categories.Delete(id); err != nil {
		attempt.to(StateFailed)
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return catalogerr.Dependency("delete category", err)
	}

	attempt.to(StateCommitted)
	return nil
}

// CategoryOptions returns the category names for edit-form selects, falling
// back to the configured default list when the fetch fails. The fallback is
// owned here so no call site carries its own hard-coded copy.
func (s *CatalogService) CategoryOptions() []string {
	categories, err := s.categories.List()
	if err != nil {
		logrus.WithError(err).Warn("Falling back to default category list")
		return s.cfg.DefaultCategories
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

// Read pass-throughs for the dashboard and storefront.

func (s *CatalogService) ListProducts() ([]models.Product, error) {
	return s.products.List()
}

func (s *CatalogService) SearchProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	return s.products.Search(params)
}

// CheckSlug exposes the uniqueness guard for the edit form's live
// availability indicator. The candidate must already be in canonical form.
func (s *CatalogService) CheckSlug(candidate string, excludeID *uuid.UUID) (SlugStatus, error) {
	return s.slugGuard.Check(candidate, excludeID)
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	return s.products.FindByID(id)
}

func (s *CatalogService) GetProductBySlug(productSlug string) (*models.Product, error) {
	return s.products.FindBySlug(productSlug)
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categories.List()
}

// Helpers

func (s *CatalogService) validateProductInput(input *ProductInput) error {
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(input)); len(validationErrors) > 0 {
		first := validationErrors[0]
		return catalogerr.Validation(first.Field, first.Message)
	}

	if strings.TrimSpace(input.Name) == "" {
		return catalogerr.Validation("name", "product name is required")
	}

	if _, err := s.categories.FindByName(input.Category, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return catalogerr.Validation("category", fmt.Sprintf("category %q does not exist", input.Category))
		}
		return catalogerr.Dependency("check category", err)
	}

	return nil
}

// resolveSlug derives the slug from the name unless a manual override was
// given; either way the result is normalized, checked for emptiness, and
// run through the uniqueness guard.
func (s *CatalogService) resolveSlug(input *ProductInput, excludeID *uuid.UUID) (string, error) {
	source := input.Name
	if input.Slug != "" {
		source = input.Slug
	}

	derived := slug.Derive(source)
	if derived == "" {
		return "", catalogerr.Validation("slug",
			fmt.Sprintf("name %q does not yield a usable slug", source))
	}

	status, err := s.slugGuard.Check(derived, excludeID)
	switch status {
	case SlugTaken:
		return "", catalogerr.Conflict("product slug", derived, "already in use")
	case SlugInconclusive:
		return "", catalogerr.Dependency("slug uniqueness check", err)
	}

	return derived, nil
}

func (s *CatalogService) checkCategoryName(name string, excludeID *uuid.UUID) error {
	existing, err := s.categories.FindByName(name, excludeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return catalogerr.Dependency("category name check", err)
	}

	return catalogerr.Conflict("category", existing.Name, "already exists")
}

func (s *CatalogService) reloadProduct(id uuid.UUID, attempt *writeAttempt) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		attempt.to(StateFailed)
		return nil, catalogerr.Dependency("reload product", err)
	}

	attempt.to(StateCommitted)
	return product, nil
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func compactSpecs(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		value := strings.TrimSpace(v)
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
}
