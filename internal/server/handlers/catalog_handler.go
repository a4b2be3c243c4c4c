package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/catalog"
)

// CatalogHandler serves brands, categories, sizes and products.
type CatalogHandler struct {
	base
	svc *catalog.Service
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{base: newBase(logger), svc: svc}
}

// respond writes v with status or maps err.
func (h *CatalogHandler) respond(c *gin.Context, status int, v any, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, v)
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	list, err := h.svc.ListBrands(c.Request.Context())
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var in models.Brand
	if !h.bind(c, &in) {
		return
	}
	brand, err := h.svc.CreateBrand(c.Request.Context(), in)
	h.respond(c, http.StatusCreated, brand, err)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.svc.ListCategories(c.Request.Context())
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var in models.Category
	if !h.bind(c, &in) {
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), in)
	h.respond(c, http.StatusCreated, category, err)
}

func (h *CatalogHandler) ListSizes(c *gin.Context) {
	list, err := h.svc.ListSizes(c.Request.Context())
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) GetSize(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	size, err := h.svc.GetSize(c.Request.Context(), id)
	h.respond(c, http.StatusOK, size, err)
}

func (h *CatalogHandler) CreateSize(c *gin.Context) {
	var in models.Size
	if !h.bind(c, &in) {
		return
	}
	size, err := h.svc.CreateSize(c.Request.Context(), in)
	h.respond(c, http.StatusCreated, size, err)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	list, err := h.svc.ListProducts(c.Request.Context())
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	h.respond(c, http.StatusOK, product, err)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if !h.bind(c, &in) {
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), in)
	h.respond(c, http.StatusCreated, product, err)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var in models.ProductInput
	if !h.bind(c, &in) {
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), id, in)
	h.respond(c, http.StatusOK, product, err)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
