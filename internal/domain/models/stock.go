package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MovementType classifies an inventory movement.
type MovementType string

const (
	MovementIn          MovementType = "ENTRADA"
	MovementOut         MovementType = "SALIDA"
	MovementAdjustUp    MovementType = "AJUSTE_POSITIVO"
	MovementAdjustDown  MovementType = "AJUSTE_NEGATIVO"
	MovementTransferIn  MovementType = "TRANSFERENCIA_ENTRADA"
	MovementTransferOut MovementType = "TRANSFERENCIA_SALIDA"
)

// movementTypeIDs keeps the numeric ids the seeded catalogue used, so clients
// may still send movementTypeId.
var movementTypeIDs = []MovementType{
	MovementIn,
	MovementOut,
	MovementAdjustUp,
	MovementAdjustDown,
	MovementTransferIn,
	MovementTransferOut,
}

// MovementTypeByID resolves a 1-based movement type id.
func MovementTypeByID(id int64) (MovementType, bool) {
	if id < 1 || int(id) > len(movementTypeIDs) {
		return "", false
	}
	return movementTypeIDs[id-1], true
}

// ID returns the 1-based catalogue id of the type, or 0 when unknown.
func (t MovementType) ID() int64 {
	for i, mt := range movementTypeIDs {
		if mt == t {
			return int64(i + 1)
		}
	}
	return 0
}

// Sign is +1 for movements that add stock and -1 for those that remove it.
// Unknown types return 0.
func (t MovementType) Sign() int {
	switch t {
	case MovementIn, MovementAdjustUp, MovementTransferIn:
		return 1
	case MovementOut, MovementAdjustDown, MovementTransferOut:
		return -1
	default:
		return 0
	}
}

// ParseMovementType accepts the Spanish names plus the ADD/SUBTRACT aliases.
func ParseMovementType(name string) (MovementType, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ADD", string(MovementIn):
		return MovementIn, true
	case "SUBTRACT", string(MovementOut):
		return MovementOut, true
	case string(MovementAdjustUp):
		return MovementAdjustUp, true
	case string(MovementAdjustDown):
		return MovementAdjustDown, true
	case string(MovementTransferIn):
		return MovementTransferIn, true
	case string(MovementTransferOut):
		return MovementTransferOut, true
	}
	return "", false
}

// Stock is the per-branch, per-product quantity on hand.
type Stock struct {
	ID        int64 `bson:"_id" json:"id"`
	ProductID int64 `bson:"product_id" json:"productId"`
	BranchID  int64 `bson:"branch_id" json:"branchId"`
	Quantity  int   `bson:"quantity" json:"quantity"`
}

// StockView embeds the product and branch of a stock row.
type StockView struct {
	Stock
	Product *ProductView `json:"product,omitempty"`
	Branch  *Branch      `json:"branch,omitempty"`
}

// InventoryMovement is one entry of the stock ledger.
type InventoryMovement struct {
	ID          int64        `bson:"_id" json:"id"`
	ProductID   int64        `bson:"product_id" json:"productId"`
	BranchID    int64        `bson:"branch_id" json:"branchId"`
	Type        MovementType `bson:"type" json:"movementTypeName"`
	Quantity    int          `bson:"quantity" json:"quantity"`
	Date        time.Time    `bson:"date" json:"movementDate"`
	UserID      int64        `bson:"user_id" json:"userId"`
	Description string       `bson:"description" json:"description,omitempty"`
}

// MovementView is a movement with its product and branch resolved.
type MovementView struct {
	InventoryMovement
	MovementTypeID int64        `json:"movementTypeId"`
	Product        *ProductView `json:"product,omitempty"`
	Branch         *Branch      `json:"branch,omitempty"`
}

// MovementInput is the payload for recording a manual movement. Either
// MovementTypeID or Type must identify the movement type.
type MovementInput struct {
	ProductID      int64  `json:"productId" binding:"required"`
	BranchID       int64  `json:"branchId" binding:"required"`
	MovementTypeID int64  `json:"movementTypeId"`
	Type           string `json:"type"`
	Quantity       int    `json:"quantity"`
	Description    string `json:"description"`
}

// TransferInput moves stock between two branches.
type TransferInput struct {
	ProductID    int64  `json:"productId" binding:"required"`
	FromBranchID int64  `json:"fromBranchId" binding:"required"`
	ToBranchID   int64  `json:"toBranchId" binding:"required"`
	Quantity     int    `json:"quantity"`
	Description  string `json:"description"`
}

// StockLine is a requested quantity of a product.
type StockLine struct {
	ProductID int64
	Quantity  int
}

// Shortage describes a product whose requested quantity exceeds what the
// branch holds.
type Shortage struct {
	ProductID int64 `json:"productId"`
	Available int   `json:"available"`
	Required  int   `json:"required"`
}

func (s Shortage) String() string {
	return fmt.Sprintf("product %d: available %d, required %d", s.ProductID, s.Available, s.Required)
}

// StockLevels indexes branch stock rows by product id.
func StockLevels(rows []Stock) map[int64]int {
	levels := make(map[int64]int, len(rows))
	for _, row := range rows {
		levels[row.ProductID] += row.Quantity
	}
	return levels
}

// CheckAvailability compares requested lines against stock levels. Lines for
// the same product are summed before comparing, and a product missing from
// levels has zero available. Shortages come back ordered by product id.
func CheckAvailability(levels map[int64]int, lines []StockLine) []Shortage {
	required := make(map[int64]int, len(lines))
	for _, line := range lines {
		required[line.ProductID] += line.Quantity
	}

	var shortages []Shortage
	for productID, qty := range required {
		if available := levels[productID]; qty > available {
			shortages = append(shortages, Shortage{ProductID: productID, Available: available, Required: qty})
		}
	}
	sort.Slice(shortages, func(i, j int) bool { return shortages[i].ProductID < shortages[j].ProductID })
	return shortages
}

// LowStock returns the products whose total is at or below threshold,
// lowest first. Ties keep product id order.
func LowStock(totals map[int64]int, threshold int) []int64 {
	var ids []int64
	for id, qty := range totals {
		if qty <= threshold {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		if totals[ids[i]] != totals[ids[j]] {
			return totals[ids[i]] < totals[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
