package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/purchases"
)

// PurchaseHandler serves /purchases and /suppliers.
type PurchaseHandler struct {
	base
	svc *purchases.Service
}

// NewPurchaseHandler constructs the HTTP handler adapter.
func NewPurchaseHandler(svc *purchases.Service, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{base: newBase(logger), svc: svc}
}

func (h *PurchaseHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	var in models.PurchaseInput
	if !h.bind(c, &in) {
		return
	}
	purchase, err := h.svc.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
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

func (h *PurchaseHandler) ListSuppliers(c *gin.Context) {
	list, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
