package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/sales"
)

// SaleHandler serves /sales and /customers.
type SaleHandler struct {
	base
	svc *sales.Service
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc *sales.Service, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{base: newBase(logger), svc: svc}
}

func (h *SaleHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// Create registers a sale. A shortage answers 409 with the per-product detail.
func (h *SaleHandler) Create(c *gin.Context) {
	var in models.SaleInput
	if !h.bind(c, &in) {
		return
	}
	sale, err := h.svc.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("sale registered",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("branch_id", sale.BranchID),
		zap.String("total", sale.TotalAmount.StringFixed(2)))
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SaleHandler) ListCustomers(c *gin.Context) {
	list, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
