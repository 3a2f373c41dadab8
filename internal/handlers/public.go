// internal/handlers/public.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garrybad/icon-kreatif-cms/internal/models"
	"github.com/garrybad/icon-kreatif-cms/internal/services"
	"github.com/garrybad/icon-kreatif-cms/internal/slug"
	"github.com/garrybad/icon-kreatif-cms/internal/utils"
)

// PublicHandler serves the read-only storefront API. Responses are shaped
// for display: formatted prices, cover image, and a guaranteed slug.
type PublicHandler struct {
	catalog  *services.CatalogService
	business *services.BusinessService
}

func NewPublicHandler(catalog *services.CatalogService, business *services.BusinessService) *PublicHandler {
	return &PublicHandler{catalog: catalog, business: business}
}

type publicProduct struct {
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Category       string            `json:"category"`
	Price          float64           `json:"price"`
	PriceDisplay   string            `json:"price_display"`
	Description    string            `json:"description"`
	CoverImage     string            `json:"cover_image,omitempty"`
	Images         []string          `json:"images"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
}

// ListProducts handles GET /api/v1/products with the same pagination
// surface as the dashboard list.
func (h *PublicHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalog.SearchProducts(params)
	if err != nil {
		writeError(c, "products", err)
		return
	}

	views := make([]publicProduct, 0, len(products))
	for i := range products {
		views = append(views, toPublicProduct(&products[i]))
	}

	result := utils.CreatePaginationResult(views, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GetProduct handles GET /api/v1/products/:slug.
func (h *PublicHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProductBySlug(c.Param("slug"))
	if err != nil {
		writeError(c, "product", err)
		return
	}
	utils.SuccessResponse(c, toPublicProduct(product))
}

// ListCategories handles GET /api/v1/categories, names only.
func (h *PublicHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		writeError(c, "categories", err)
		return
	}

	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}
	utils.SuccessResponse(c, names)
}

// BusinessDetails handles GET /api/v1/business-details. Missing contact
// fields come back empty rather than erroring, so the storefront can always
// render the footer.
func (h *PublicHandler) BusinessDetails(c *gin.Context) {
	detail, err := h.business.Get()
	if err != nil {
		writeError(c, "business details", err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"whatsapp": detail.WhatsApp,
		"address":  detail.Address,
		"email":    detail.Email,
	})
}

func toPublicProduct(p *models.Product) publicProduct {
	view := publicProduct{
		Name:           p.Name,
		Slug:           p.Slug,
		Category:       p.Category,
		Price:          p.Price,
		PriceDisplay:   FormatIDR(p.Price),
		Description:    p.Description,
		Images:         p.Images,
		Features:       p.Features,
		Specifications: p.Specifications,
	}

	// Rows created before slug persistence may have an empty slug column.
	if view.Slug == "" {
		view.Slug = slug.Derive(p.Name)
	}
	if len(p.Images) > 0 {
		view.CoverImage = p.Images[0]
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if view.Features == nil {
		view.Features = []string{}
	}
	if view.Specifications == nil {
		view.Specifications = map[string]string{}
	}

	return view
}

// FormatIDR renders a price as Indonesian rupiah with dot-grouped
// thousands, e.g. 1500000 -> "Rp 1.500.000".
func FormatIDR(price float64) string {
	digits := strconv.FormatInt(int64(price), 10)

	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	out := "Rp " + string(grouped)
	if negative {
		out = "Rp -" + string(grouped)
	}
	return out
}
