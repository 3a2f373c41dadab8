// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garrybad/icon-kreatif-cms/internal/services"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

type CategoryHandler struct {
	catalog *services.CatalogService
}

func NewCategoryHandler(catalog *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /api/v1/admin/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		writeError(c, "categories", err)
		return
	}
	utils.SuccessResponse(c, categories)
}

// Create handles POST /api/v1/admin/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.catalog.CreateCategory(sess, req.Name)
	if err != nil {
		writeError(c, "category", err)
		return
	}

	utils.CreatedResponse(c, category)
}

// Rename handles PUT /api/v1/admin/categories/:id.
func (h *CategoryHandler) Rename(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid category id", nil)
		return
	}

	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.catalog.RenameCategory(sess, id, req.Name)
	if err != nil {
		writeError(c, "category", err)
		return
	}

	utils.SuccessResponse(c, category)
}

// Delete handles DELETE /api/v1/admin/categories/:id. A category still
// referenced by products is refused with a conflict.
func (h *CategoryHandler) Delete(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid category id", nil)
		return
	}

	if err := h.catalog.DeleteCategory(sess, id); err != nil {
		writeError(c, "category", err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
