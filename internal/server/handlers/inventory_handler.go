package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/inventory"
)

const defaultMovementLimit = 50

// InventoryHandler serves stock queries, movements and transfers.
type InventoryHandler struct {
	base
	svc *inventory.Service
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{base: newBase(logger), svc: svc}
}

// Stock answers GET /inventory/stock?productId=&branchId=.
func (h *InventoryHandler) Stock(c *gin.Context) {
	productID, ok := h.queryID(c, "productId")
	if !ok {
		return
	}
	branchID, ok := h.queryID(c, "branchId")
	if !ok {
		return
	}
	view, err := h.svc.Stock(c.Request.Context(), productID, branchID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *InventoryHandler) StockByBranch(c *gin.Context) {
	id, ok := h.pathID(c, "branchId")
	if !ok {
		return
	}
	list, err := h.svc.StockByBranch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InventoryHandler) StockByProduct(c *gin.Context) {
	id, ok := h.pathID(c, "productId")
	if !ok {
		return
	}
	list, err := h.svc.StockByProduct(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Movements lists the latest movements, newest first. ?limit= caps the count.
func (h *InventoryHandler) Movements(c *gin.Context) {
	limit := defaultMovementLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	list, err := h.svc.Movements(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var in models.MovementInput
	if !h.bind(c, &in) {
		return
	}
	view, err := h.svc.RecordMovement(c.Request.Context(), userID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *InventoryHandler) Transfer(c *gin.Context) {
	var in models.TransferInput
	if !h.bind(c, &in) {
		return
	}
	views, err := h.svc.Transfer(c.Request.Context(), userID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, views)
}
