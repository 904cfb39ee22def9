// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/catalog"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// CatalogHandler handles the public, read-only catalog views. Every endpoint
// is one upstream fetch rendered as-is; nothing is cached between requests.
type CatalogHandler struct {
	upstream *upstream.Client
	home     *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(client *upstream.Client, home *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		upstream: client,
		home:     home,
	}
}

// Home handles GET /home: three independent section fetches, each section
// empty on its own failure
func (h *CatalogHandler) Home(c *gin.Context) {
	content := h.home.Home(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Home content retrieved successfully",
		"data":    content,
	})
}

// GetProducts handles GET /products with an optional category filter
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.upstream.Products(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to load products")
		return
	}
	if products == nil {
		products = []upstream.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.upstream.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// GetBrands handles GET /brands
func (h *CatalogHandler) GetBrands(c *gin.Context) {
	brands, err := h.upstream.Brands(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Failed to load brands")
		return
	}
	if brands == nil {
		brands = []upstream.Ref{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brands retrieved successfully",
		"data":    brands,
	})
}

// GetCategories handles GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.upstream.Categories(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Failed to load categories")
		return
	}
	if categories == nil {
		categories = []upstream.Ref{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// GetCategory handles GET /categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.upstream.Category(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to load category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category retrieved successfully",
		"data":    category,
	})
}
