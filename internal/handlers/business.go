// internal/handlers/business.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/services"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

type BusinessHandler struct {
	business *services.BusinessService
}

func NewBusinessHandler(business *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{business: business}
}

type businessRequest struct {
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// Get handles GET /api/v1/admin/business-details. A missing row comes back
// as an empty record, never as a 404.
func (h *BusinessHandler) Get(c *gin.Context) {
	detail, err := h.business.Get()
	if err != nil {
		writeError(c, "business details", err)
		return
	}
	utils.SuccessResponse(c, detail)
}

// Save handles PUT /api/v1/admin/business-details, upserting the singleton.
func (h *BusinessHandler) Save(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	var req businessRequest
	if !bindJSON(c, &req) {
		return
	}

	detail := &models.BusinessDetail{
		WhatsApp: req.WhatsApp,
		Address:  req.Address,
		Email:    req.Email,
	}

	if err := h.business.Save(sess, detail); err != nil {
		writeError(c, "business details", err)
		return
	}

	utils.SuccessResponse(c, detail)
}
