// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garrybad/icon-kreatif-cms/internal/catalogerr"
	"github.com/garrybad/icon-kreatif-cms/internal/services"
	"github.com/garrybad/icon-kreatif-cms/internal/slug"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// ProductHandler serves the dashboard product routes. Each write request gets
// its own AssetPipeline so staged images never leak across requests.
type ProductHandler struct {
	catalog  *services.CatalogService
	backend  services.ImageBackend
	previews *services.PreviewRegistry
	maxSize  int64
}

func NewProductHandler(catalog *services.CatalogService, backend services.ImageBackend, previews *services.PreviewRegistry, maxSize int64) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		backend:  backend,
		previews: previews,
		maxSize:  maxSize,
	}
}

func (h *ProductHandler) newPipeline() *services.AssetPipeline {
	return services.NewAssetPipeline(h.backend, h.previews, h.maxSize)
}

// List handles GET /api/v1/admin/products with pagination, search and
// category filtering.
func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalog.SearchProducts(params)
	if err != nil {
		writeError(c, "products", err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// Get handles GET /api/v1/admin/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid product id", nil)
		return
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		writeError(c, "product", err)
		return
	}
	utils.SuccessResponse(c, product)
}

// Create handles POST /api/v1/admin/products. The request is multipart:
// scalar fields plus one "images" part per staged file.
func (h *ProductHandler) Create(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	input, err := productInputFromForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	pipeline := h.newPipeline()
	defer pipeline.Discard()

	if err := stageUploads(c, pipeline); err != nil {
		writeError(c, "product images", err)
		return
	}

	product, err := h.catalog.CreateProduct(sess, input, pipeline)
	if err != nil {
		writeError(c, "product", err)
		return
	}

	utils.CreatedResponse(c, product)
}

// Update handles PUT /api/v1/admin/products/:id. The form's repeated
// "existing_images" field lists the persisted refs the operator kept, in
// display order; staged uploads are appended after them.
func (h *ProductHandler) Update(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid product id", nil)
		return
	}

	input, err := productInputFromForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	pipeline := h.newPipeline()
	defer pipeline.Discard()

	if err := stageUploads(c, pipeline); err != nil {
		writeError(c, "product images", err)
		return
	}

	retained := c.PostFormArray("existing_images")

	product, err := h.catalog.UpdateProduct(sess, id, input, pipeline, retained)
	if err != nil {
		writeError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, product)
}

// Delete handles DELETE /api/v1/admin/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid product id", nil)
		return
	}

	if err := h.catalog.DeleteProduct(sess, id); err != nil {
		writeError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// CategoryOptions handles GET /api/v1/admin/products/category-options, the
// list backing the edit-form select.
func (h *ProductHandler) CategoryOptions(c *gin.Context) {
	utils.SuccessResponse(c, h.catalog.CategoryOptions())
}

type slugCheckQuery struct {
	Name      string `form:"name"`
	Slug      string `form:"slug" validate:"omitempty,slug"`
	ExcludeID string `form:"exclude_id"`
}

// CheckSlug handles GET /api/v1/admin/products/slug-check, the edit form's
// live availability indicator. Either a raw name to derive from or an
// already-canonical slug can be given.
func (h *ProductHandler) CheckSlug(c *gin.Context) {
	var query slugCheckQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "invalid query", nil)
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&query)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	candidate := query.Slug
	if candidate == "" {
		candidate = slug.Derive(query.Name)
	}
	if candidate == "" {
		utils.BadRequestResponse(c, "name or slug is required", nil)
		return
	}

	var excludeID *uuid.UUID
	if query.ExcludeID != "" {
		id, err := uuid.Parse(query.ExcludeID)
		if err != nil {
			utils.BadRequestResponse(c, "invalid exclude_id", nil)
			return
		}
		excludeID = &id
	}

	status, err := h.catalog.CheckSlug(candidate, excludeID)
	if err != nil {
		writeError(c, "slug", catalogerr.Dependency("slug uniqueness check", err))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"slug":   candidate,
		"status": status.String(),
	})
}

// productInputFromForm maps the multipart fields onto a ProductInput.
// "features" repeats per value; "specifications" is a JSON object field.
func productInputFromForm(c *gin.Context) (*services.ProductInput, error) {
	input := &services.ProductInput{
		Name:        c.PostForm("name"),
		Slug:        c.PostForm("slug"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Features:    c.PostFormArray("features"),
	}

	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, catalogerr.Validation("price", "must be a number")
		}
		input.Price = price
	}

	if specsStr := c.PostForm("specifications"); specsStr != "" {
		if err := json.Unmarshal([]byte(specsStr), &input.Specifications); err != nil {
			return nil, catalogerr.Validation("specifications", "must be a JSON object of string pairs")
		}
	}

	return input, nil
}

// stageUploads reads every "images" part into the pipeline. The first failed
// file aborts the request; nothing staged so far survives past the handler.
func stageUploads(c *gin.Context, pipeline *services.AssetPipeline) error {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all means no new images, which is fine
		// for updates.
		return nil
	}

	for _, header := range form.File["images"] {
		data, err := readUpload(header)
		if err != nil {
			return err
		}
		if _, err := pipeline.Stage(header.Filename, data, header.Header.Get("Content-Type")); err != nil {
			return err
		}
	}
	return nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
