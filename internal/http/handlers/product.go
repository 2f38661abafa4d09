package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/services"
)

type ProductHandler struct {
	catalogService services.CatalogService
}

func NewProductHandler(catalogService services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GET /api/products
func (ph *ProductHandler) List(c *gin.Context) {
	q := services.SearchQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
		Page:     intQuery(c, "page"),
		PerPage:  intQuery(c, "per_page"),
	}
	page, err := ph.catalogService.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", page)
}

// GET /api/products/:id
func (ph *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := ph.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", gin.H{"product": product})
}

// POST /api/products/lookup
func (ph *ProductHandler) Lookup(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid product id")
			return
		}
		ids = append(ids, id)
	}
	products, err := ph.catalogService.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", gin.H{"products": products})
}

// GET /api/products/categories
func (ph *ProductHandler) Categories(c *gin.Context) {
	categories, err := ph.catalogService.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", gin.H{"categories": categories})
}

func intQuery(c *gin.Context, name string) int {
	v := c.Query(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
