package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bwc/pos/internal/domain/models"
)

// Auth

func (c *Client) Signin(ctx context.Context, username, password string) (models.JwtResponse, error) {
	return send[models.JwtResponse](ctx, c, http.MethodPost, "/auth/signin", models.LoginRequest{Username: username, Password: password})
}

func (c *Client) Signup(ctx context.Context, req models.SignUpRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", req, nil)
}

// Branches

func (c *Client) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return get[[]models.Branch](ctx, c, "/branches")
}

func (c *Client) GetBranch(ctx context.Context, id int64) (models.Branch, error) {
	return get[models.Branch](ctx, c, fmt.Sprintf("/branches/%d", id))
}

func (c *Client) CreateBranch(ctx context.Context, in models.BranchInput) (models.Branch, error) {
	return send[models.Branch](ctx, c, http.MethodPost, "/branches", in)
}

func (c *Client) UpdateBranch(ctx context.Context, id int64, in models.BranchInput) (models.Branch, error) {
	return send[models.Branch](ctx, c, http.MethodPut, fmt.Sprintf("/branches/%d", id), in)
}

func (c *Client) DeleteBranch(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/branches/%d", id), nil, nil)
}

// Catalogue

func (c *Client) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return get[[]models.Brand](ctx, c, "/brands")
}

func (c *Client) CreateBrand(ctx context.Context, in models.Brand) (models.Brand, error) {
	return send[models.Brand](ctx, c, http.MethodPost, "/brands", in)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return get[[]models.Category](ctx, c, "/categories")
}

func (c *Client) CreateCategory(ctx context.Context, in models.Category) (models.Category, error) {
	return send[models.Category](ctx, c, http.MethodPost, "/categories", in)
}

func (c *Client) ListSizes(ctx context.Context) ([]models.Size, error) {
	return get[[]models.Size](ctx, c, "/sizes")
}

func (c *Client) GetSize(ctx context.Context, id int64) (models.Size, error) {
	return get[models.Size](ctx, c, fmt.Sprintf("/sizes/%d", id))
}

func (c *Client) CreateSize(ctx context.Context, in models.Size) (models.Size, error) {
	return send[models.Size](ctx, c, http.MethodPost, "/sizes", in)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.ProductView, error) {
	return get[[]models.ProductView](ctx, c, "/products")
}

func (c *Client) GetProduct(ctx context.Context, id int64) (models.ProductView, error) {
	return get[models.ProductView](ctx, c, fmt.Sprintf("/products/%d", id))
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.ProductView, error) {
	return send[models.ProductView](ctx, c, http.MethodPost, "/products", in)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (models.ProductView, error) {
	return send[models.ProductView](ctx, c, http.MethodPut, fmt.Sprintf("/products/%d", id), in)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return get[[]models.User](ctx, c, "/users")
}

func (c *Client) GetUser(ctx context.Context, id int64) (models.User, error) {
	return get[models.User](ctx, c, fmt.Sprintf("/users/%d", id))
}

func (c *Client) CreateUser(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	return send[models.User](ctx, c, http.MethodPost, "/users", req)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, req models.UserUpdate) (models.User, error) {
	return send[models.User](ctx, c, http.MethodPut, fmt.Sprintf("/users/%d", id), req)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// Inventory

func (c *Client) Stock(ctx context.Context, productID, branchID int64) (models.StockView, error) {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("branchId", strconv.FormatInt(branchID, 10))
	return get[models.StockView](ctx, c, "/inventory/stock?"+q.Encode())
}

func (c *Client) StockByBranch(ctx context.Context, branchID int64) ([]models.StockView, error) {
	return get[[]models.StockView](ctx, c, fmt.Sprintf("/inventory/stock/branch/%d", branchID))
}

func (c *Client) StockByProduct(ctx context.Context, productID int64) ([]models.StockView, error) {
	return get[[]models.StockView](ctx, c, fmt.Sprintf("/inventory/stock/product/%d", productID))
}

// Movements lists the latest movements. A non-positive limit uses the
// server default.
func (c *Client) Movements(ctx context.Context, limit int) ([]models.MovementView, error) {
	path := "/inventory/movements"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return get[[]models.MovementView](ctx, c, path)
}

func (c *Client) RecordMovement(ctx context.Context, in models.MovementInput) (models.MovementView, error) {
	return send[models.MovementView](ctx, c, http.MethodPost, "/inventory/movements", in)
}

func (c *Client) Transfer(ctx context.Context, in models.TransferInput) ([]models.MovementView, error) {
	return send[[]models.MovementView](ctx, c, http.MethodPost, "/inventory/transfers", in)
}

// Sales

func (c *Client) ListSales(ctx context.Context) ([]models.SaleView, error) {
	return get[[]models.SaleView](ctx, c, "/sales")
}

func (c *Client) GetSale(ctx context.Context, id int64) (models.SaleView, error) {
	return get[models.SaleView](ctx, c, fmt.Sprintf("/sales/%d", id))
}

// CreateSale submits a sale without a local stock check. Prefer
// CreateSaleChecked from interactive tools.
func (c *Client) CreateSale(ctx context.Context, in models.SaleInput) (models.SaleView, error) {
	return send[models.SaleView](ctx, c, http.MethodPost, "/sales", in)
}

func (c *Client) DeleteSale(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/sales/%d", id), nil, nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return get[[]models.Customer](ctx, c, "/customers")
}

// Purchases

func (c *Client) ListPurchases(ctx context.Context) ([]models.PurchaseView, error) {
	return get[[]models.PurchaseView](ctx, c, "/purchases")
}

func (c *Client) GetPurchase(ctx context.Context, id int64) (models.PurchaseView, error) {
	return get[models.PurchaseView](ctx, c, fmt.Sprintf("/purchases/%d", id))
}

func (c *Client) CreatePurchase(ctx context.Context, in models.PurchaseInput) (models.PurchaseView, error) {
	return send[models.PurchaseView](ctx, c, http.MethodPost, "/purchases", in)
}

func (c *Client) DeletePurchase(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/purchases/%d", id), nil, nil)
}

func (c *Client) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return get[[]models.Supplier](ctx, c, "/suppliers")
}

// Dashboard

func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return get[models.DashboardStats](ctx, c, "/dashboard/stats")
}
