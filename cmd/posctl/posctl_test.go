package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/pkg/clients/api"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer tok" {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			return false
		}
		return true
	}

	mux.HandleFunc("POST /api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "admin123" {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
			return
		}
		reply(w, http.StatusOK, models.JwtResponse{Token: "tok", Type: "Bearer", ID: 1, Username: req.Username, Roles: []string{"ROLE_ADMINISTRADOR"}})
	})
	mux.HandleFunc("GET /api/branches", func(w http.ResponseWriter, r *http.Request) {
		if authorized(w, r) {
			reply(w, http.StatusOK, []models.Branch{{ID: 1, Name: "Sucursal Principal", Address: "Zona 1", State: true}})
		}
	})
	mux.HandleFunc("GET /api/inventory/stock/branch/1", func(w http.ResponseWriter, r *http.Request) {
		if authorized(w, r) {
			reply(w, http.StatusOK, []models.StockView{{Stock: models.Stock{ProductID: 7, BranchID: 1, Quantity: 1}}})
		}
	})
	mux.HandleFunc("POST /api/sales", func(w http.ResponseWriter, r *http.Request) {
		if authorized(w, r) {
			reply(w, http.StatusCreated, models.SaleView{
				Sale:         models.Sale{ID: 3, BranchID: 1, TotalAmount: decimal.RequireFromString("899.90"), DocumentStatus: models.DocumentCompleted},
				CustomerName: "Cliente General",
			})
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, sessionPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--session", sessionPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestLoginFlow(t *testing.T) {
	srv := fakeAPI(t)
	sessionPath := filepath.Join(t.TempDir(), "session.yaml")

	_, err := execute(t, sessionPath, "branches", "list")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = execute(t, sessionPath, "--server", srv.URL+"/api", "login", "-u", "admin", "-p", "wrong")
	require.Error(t, err)

	out, err := execute(t, sessionPath, "--server", srv.URL+"/api", "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as admin")

	store, err := api.NewSessionStore(sessionPath)
	require.NoError(t, err)
	session, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", session.AccessToken)
	assert.Equal(t, srv.URL+"/api", session.BaseURL)

	out, err = execute(t, sessionPath, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "admin @ "+srv.URL)

	out, err = execute(t, sessionPath, "branches", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sucursal Principal")

	out, err = execute(t, sessionPath, "--json", "branches", "list")
	require.NoError(t, err)
	var branches []models.Branch
	require.NoError(t, json.Unmarshal([]byte(out), &branches))
	assert.Len(t, branches, 1)

	_, err = execute(t, sessionPath, "logout")
	require.NoError(t, err)
	_, err = execute(t, sessionPath, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestSalesCreateChecksStock(t *testing.T) {
	srv := fakeAPI(t)
	sessionPath := filepath.Join(t.TempDir(), "session.yaml")
	_, err := execute(t, sessionPath, "--server", srv.URL+"/api", "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)

	out, err := execute(t, sessionPath, "sales", "create", "--branch", "1", "--item", "7:2")
	require.Error(t, err)
	assert.Contains(t, out, "insufficient stock")

	out, err = execute(t, sessionPath, "sales", "create", "--branch", "1", "--item", "7:1")
	require.NoError(t, err)
	assert.Contains(t, out, "Q 899.90")
	assert.Contains(t, out, "Cliente General")

	_, err = execute(t, sessionPath, "sales", "create", "--branch", "1", "--item", "7")
	assert.ErrorContains(t, err, "productId:quantity")
}

func TestParseLines(t *testing.T) {
	lines, err := parseLines([]string{"3:2", "4:1:450.50"})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, models.LineInput{ProductID: 3, Quantity: 2}, lines[0])
	require.NotNil(t, lines[1].UnitPrice)
	assert.True(t, lines[1].UnitPrice.Equal(decimal.RequireFromString("450.50")))

	for _, bad := range []string{"x:1", "3:0", "3:-1", "3:1:abc", "3:1:2:4"} {
		_, err := parseLines([]string{bad})
		assert.Error(t, err, bad)
	}
	_, err = parseLines(nil)
	assert.Error(t, err)
}
