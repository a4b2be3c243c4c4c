package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwc/pos/internal/domain/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/branches", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Branch{{ID: 1, Name: "Sucursal Principal", State: true}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", StaticToken("tok-123"))
	branches, err := c.ListBranches(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, "Sucursal Principal", branches[0].Name)
}

func TestClientWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req.Username)
		writeJSON(w, http.StatusOK, models.JwtResponse{Token: "abc", Type: "Bearer", ID: 1, Username: "admin"})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, nil).Signin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
}

func TestClientMapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/branches/9":
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "branch 9: not found"})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("t"))

	_, err := c.GetBranch(context.Background(), 9)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "branch 9: not found", apiErr.Message)

	err = c.DeleteBranch(context.Background(), 3)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestCreateSaleChecked(t *testing.T) {
	var posted atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/inventory/stock/branch/1":
			writeJSON(w, http.StatusOK, []models.StockView{
				{Stock: models.Stock{ID: 1, ProductID: 10, BranchID: 1, Quantity: 2}},
				{Stock: models.Stock{ID: 2, ProductID: 11, BranchID: 1, Quantity: 7}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/sales":
			posted.Add(1)
			writeJSON(w, http.StatusCreated, models.SaleView{Sale: models.Sale{ID: 4, BranchID: 1, TotalAmount: decimal.NewFromInt(300)}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("t"))
	ctx := context.Background()

	_, err := c.CreateSaleChecked(ctx, models.SaleInput{
		BranchID: 1,
		Details: []models.LineInput{
			{ProductID: 10, Quantity: 3},
			{ProductID: 11, Quantity: 1},
		},
	})
	var shortErr *ShortageError
	require.True(t, errors.As(err, &shortErr))
	require.Len(t, shortErr.Shortages, 1)
	assert.Equal(t, models.Shortage{ProductID: 10, Available: 2, Required: 3}, shortErr.Shortages[0])
	assert.Zero(t, posted.Load())

	sale, err := c.CreateSaleChecked(ctx, models.SaleInput{
		BranchID: 1,
		Details:  []models.LineInput{{ProductID: 11, Quantity: 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), sale.ID)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, int32(1), posted.Load())
}

func TestServerShortageIsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "insufficient stock for Air Max (available 0, required 1)",
			"shortages": []models.Shortage{{ProductID: 1, Available: 0, Required: 1}},
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, StaticToken("t")).CreateSale(context.Background(), models.SaleInput{BranchID: 1})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, []models.Shortage{{ProductID: 1, Available: 0, Required: 1}}, apiErr.Shortages)
}

func TestSessionStore(t *testing.T) {
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "bwc", "session.yaml"))
	require.NoError(t, err)

	empty, err := store.Load()
	require.NoError(t, err)
	assert.False(t, empty.LoggedIn())

	want := Session{BaseURL: DefaultBaseURL, AccessToken: "tok", Username: "admin", Roles: []string{"ROLE_ADMINISTRADOR"}}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "tok", got.Token())

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}
