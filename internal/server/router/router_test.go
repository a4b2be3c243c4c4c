package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/repository/memory"
	"github.com/bwc/pos/internal/seed"
	"github.com/bwc/pos/internal/server/handlers"
	"github.com/bwc/pos/internal/service/auth"
	"github.com/bwc/pos/internal/service/branches"
	"github.com/bwc/pos/internal/service/catalog"
	"github.com/bwc/pos/internal/service/dashboard"
	"github.com/bwc/pos/internal/service/inventory"
	"github.com/bwc/pos/internal/service/purchases"
	"github.com/bwc/pos/internal/service/sales"
	"github.com/bwc/pos/internal/service/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()

	userSvc := users.NewService(store, logger)
	authSvc := auth.NewService(userSvc, config.AuthConfig{JWTSecret: "router-secret", JWTExpiry: time.Hour, JWTIssuer: "bwc-pos"}, logger)
	catalogSvc := catalog.NewService(store, logger)
	inventorySvc := inventory.NewService(store, catalogSvc, logger)

	require.NoError(t, seed.New(store, userSvc, config.SeedConfig{AdminPassword: "admin123", SellerPassword: "vendedor123"}, logger).Run(context.Background()))

	return New(Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, logger),
		Branch:    handlers.NewBranchHandler(branches.NewService(store, logger), logger),
		Catalog:   handlers.NewCatalogHandler(catalogSvc, logger),
		User:      handlers.NewUserHandler(userSvc, logger),
		Inventory: handlers.NewInventoryHandler(inventorySvc, logger),
		Sale:      handlers.NewSaleHandler(sales.NewService(store, logger), logger),
		Purchase:  handlers.NewPurchaseHandler(purchases.NewService(store, logger), logger),
		Dashboard: handlers.NewDashboardHandler(dashboard.NewService(store, catalogSvc, inventorySvc, time.UTC, 5, logger), logger),
	}, authSvc, logger)
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signin(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	rec := call(t, r, http.MethodPost, "/api/auth/signin", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		Type  string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.Type)
	return resp.Token
}

func TestHealthz(t *testing.T) {
	r := newTestEngine(t)

	rec := call(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthRoutes(t *testing.T) {
	r := newTestEngine(t)

	rec := call(t, r, http.MethodPost, "/api/auth/signin", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{"username": "almacen", "email": "almacen@bwc.gt", "password": "bodega1", "roles": []string{"almacenista"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"User registered successfully!"}`, rec.Body.String())

	rec = call(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{"username": "almacen", "email": "otro@bwc.gt", "password": "bodega1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{"username": "nuevo", "email": "nuevo@bwc.gt", "password": "secreto", "branches": []int64{99}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "x@bwc.gt"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleTable(t *testing.T) {
	r := newTestEngine(t)
	adminToken := signin(t, r, "admin", "admin123")
	sellerToken := signin(t, r, "vendedor", "vendedor123")

	rec := call(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{"username": "bodega", "email": "bodega@bwc.gt", "password": "bodega1", "roles": []string{"almacenista"}})
	require.Equal(t, http.StatusOK, rec.Code)
	warehouseToken := signin(t, r, "bodega", "bodega1")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/branches", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/branches", "nope", http.StatusUnauthorized},
		{"seller lists branches", http.MethodGet, "/api/branches", sellerToken, http.StatusOK},
		{"warehouse cannot list branches", http.MethodGet, "/api/branches", warehouseToken, http.StatusForbidden},
		{"seller cannot delete branch", http.MethodDelete, "/api/branches/2", sellerToken, http.StatusForbidden},
		{"warehouse lists sizes", http.MethodGet, "/api/sizes", warehouseToken, http.StatusOK},
		{"seller cannot get size", http.MethodGet, "/api/sizes/1", sellerToken, http.StatusForbidden},
		{"admin gets size", http.MethodGet, "/api/sizes/1", adminToken, http.StatusOK},
		{"seller cannot list users", http.MethodGet, "/api/users", sellerToken, http.StatusForbidden},
		{"admin lists users", http.MethodGet, "/api/users", adminToken, http.StatusOK},
		{"warehouse lists movements", http.MethodGet, "/api/inventory/movements", warehouseToken, http.StatusOK},
		{"seller cannot list purchases", http.MethodGet, "/api/purchases", sellerToken, http.StatusForbidden},
		{"seller cannot list suppliers", http.MethodGet, "/api/suppliers", sellerToken, http.StatusForbidden},
		{"seller lists customers", http.MethodGet, "/api/customers", sellerToken, http.StatusOK},
		{"warehouse reads dashboard", http.MethodGet, "/api/dashboard/stats", warehouseToken, http.StatusOK},
		{"unknown branch", http.MethodGet, "/api/branches/99", adminToken, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/branches/abc", adminToken, http.StatusBadRequest},
		{"stock query needs ids", http.MethodGet, "/api/inventory/stock?productId=1", adminToken, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, r, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSaleFlow(t *testing.T) {
	r := newTestEngine(t)
	adminToken := signin(t, r, "admin", "admin123")
	sellerToken := signin(t, r, "vendedor", "vendedor123")

	rec := call(t, r, http.MethodPost, "/api/products", adminToken, gin.H{
		"name": "Air Max 90", "brandId": 1, "categoryId": 1, "sizeIds": []int64{20},
		"purchasePrice": 450, "salePrice": 899.90,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, r, http.MethodPost, "/api/purchases", adminToken, gin.H{
		"supplierName": "Distribuidora Central",
		"branchId":     1,
		"purchaseDetails": []gin.H{
			{"productId": 1, "quantity": 3, "unitPrice": 450},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, r, http.MethodGet, "/api/inventory/stock?productId=1&branchId=1", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stock struct {
		Quantity int `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stock))
	assert.Equal(t, 3, stock.Quantity)

	rec = call(t, r, http.MethodDelete, "/api/branches/1", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "branch still holds stock")

	rec = call(t, r, http.MethodPost, "/api/sales", sellerToken, gin.H{
		"branchId":    1,
		"saleDetails": []gin.H{{"productId": 1, "quantity": 5}},
	})
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	var shortage struct {
		Error     string `json:"error"`
		Shortages []struct {
			ProductID int64 `json:"productId"`
			Available int   `json:"available"`
			Required  int   `json:"required"`
		} `json:"shortages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shortage))
	require.Len(t, shortage.Shortages, 1)
	assert.Equal(t, 3, shortage.Shortages[0].Available)
	assert.Equal(t, 5, shortage.Shortages[0].Required)
	assert.Contains(t, shortage.Error, "Air Max 90")

	rec = call(t, r, http.MethodPost, "/api/sales", sellerToken, gin.H{
		"branchId":     1,
		"customerName": "Ana Lucía Pérez",
		"saleDetails":  []gin.H{{"productId": 1, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale struct {
		ID           int64   `json:"id"`
		TotalAmount  float64 `json:"totalAmount"`
		CustomerName string  `json:"customerName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sale))
	assert.InDelta(t, 1799.80, sale.TotalAmount, 0.001)
	assert.Equal(t, "Ana Lucía Pérez", sale.CustomerName)

	rec = call(t, r, http.MethodDelete, "/api/products/1", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, r, http.MethodDelete, "/api/sales/1", sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, r, http.MethodDelete, "/api/sales/1", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, r, http.MethodGet, "/api/inventory/movements?limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var moves []struct {
		Type string `json:"movementTypeName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moves))
	require.Len(t, moves, 3)
	assert.Equal(t, "AJUSTE_POSITIVO", moves[0].Type)

	rec = call(t, r, http.MethodGet, "/api/inventory/movements?limit=0", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
