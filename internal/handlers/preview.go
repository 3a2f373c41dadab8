// internal/handlers/preview.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garrybad/icon-kreatif-cms/internal/services"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// PreviewHandler serves staged-image previews by token. Tokens die with
// their pipeline, so a stale editor tab gets a 404, not a leaked image.
type PreviewHandler struct {
	previews *services.PreviewRegistry
}

func NewPreviewHandler(previews *services.PreviewRegistry) *PreviewHandler {
	return &PreviewHandler{previews: previews}
}

// Get handles GET /api/v1/admin/previews/:token.
func (h *PreviewHandler) Get(c *gin.Context) {
	data, contentType, ok := h.previews.Resolve(c.Param("token"))
	if !ok {
		utils.NotFoundResponse(c, "preview")
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
