package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/pkg/clients/api"
)

func (c *cli) branchesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "branches", Short: "Manage branches"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List branches",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			branches, err := client.ListBranches(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(branches, func() { c.branchTable(branches...) })
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one branch",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			branchID, err := parseID(args[0])
			if err != nil {
				return err
			}
			branch, err := client.GetBranch(cmd.Context(), branchID)
			if err != nil {
				return err
			}
			return c.emit(branch, func() { c.branchTable(branch) })
		}),
	}

	var in models.BranchInput
	var inactive bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a branch",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			state := !inactive
			in.State = &state
			branch, err := client.CreateBranch(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.emit(branch, func() { c.branchTable(branch) })
		}),
	}
	create.Flags().StringVar(&in.Name, "name", "", "branch name")
	create.Flags().StringVar(&in.Address, "address", "", "street address")
	create.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	create.Flags().BoolVar(&inactive, "inactive", false, "create the branch disabled")

	var upd models.BranchInput
	var active bool
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a branch's name, address and phone",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			branchID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("active") {
				upd.State = &active
			}
			branch, err := client.UpdateBranch(cmd.Context(), branchID, upd)
			if err != nil {
				return err
			}
			return c.emit(branch, func() { c.branchTable(branch) })
		}),
	}
	update.Flags().StringVar(&upd.Name, "name", "", "branch name")
	update.Flags().StringVar(&upd.Address, "address", "", "street address")
	update.Flags().StringVar(&upd.Phone, "phone", "", "phone number")
	update.Flags().BoolVar(&active, "active", true, "enable or disable the branch")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a branch",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			branchID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteBranch(cmd.Context(), branchID); err != nil {
				return err
			}
			c.println("branch %d deleted", branchID)
			return nil
		}),
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func (c *cli) branchTable(branches ...models.Branch) {
	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, []string{id(b.ID), b.Name, b.Address, b.Phone, yesNo(b.State)})
	}
	c.table([]string{"ID", "Name", "Address", "Phone", "Active"}, rows)
}

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage the product catalogue"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products with their total stock",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			products, err := client.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(products, func() { c.productTable(products...) })
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			product, err := client.GetProduct(cmd.Context(), productID)
			if err != nil {
				return err
			}
			return c.emit(product, func() { c.productTable(product) })
		}),
	}

	var (
		in                       models.ProductInput
		brandID, categoryID      int64
		purchasePrice, salePrice string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			var err error
			if in.PurchasePrice, err = decimal.NewFromString(purchasePrice); err != nil {
				return fmt.Errorf("--purchase-price: %w", err)
			}
			if in.SalePrice, err = decimal.NewFromString(salePrice); err != nil {
				return fmt.Errorf("--sale-price: %w", err)
			}
			if brandID > 0 {
				in.BrandID = &brandID
			}
			if categoryID > 0 {
				in.CategoryID = &categoryID
			}
			product, err := client.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.emit(product, func() { c.productTable(product) })
		}),
	}
	create.Flags().StringVar(&in.Name, "name", "", "product name")
	create.Flags().StringVar(&in.Description, "description", "", "free text description")
	create.Flags().Int64Var(&brandID, "brand", 0, "brand id")
	create.Flags().Int64Var(&categoryID, "category", 0, "category id")
	create.Flags().Int64SliceVar(&in.SizeIDs, "size", nil, "size id (repeatable)")
	create.Flags().StringVar(&purchasePrice, "purchase-price", "0", "unit cost")
	create.Flags().StringVar(&salePrice, "sale-price", "0", "unit sale price")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product without stock",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteProduct(cmd.Context(), productID); err != nil {
				return err
			}
			c.println("product %d deleted", productID)
			return nil
		}),
	}

	cmd.AddCommand(list, get, create, del)
	return cmd
}

func (c *cli) productTable(products ...models.ProductView) {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		var brand, category string
		if p.Brand != nil {
			brand = p.Brand.Name
		}
		if p.Category != nil {
			category = p.Category.Name
		}
		sizes := make([]string, 0, len(p.Sizes))
		for _, s := range p.Sizes {
			sizes = append(sizes, s.Name)
		}
		rows = append(rows, []string{id(p.ID), p.Name, brand, category, join(sizes), money(p.SalePrice), fmt.Sprint(p.Stock)})
	}
	c.table([]string{"ID", "Name", "Brand", "Category", "Sizes", "Price", "Stock"}, rows)
}

// lookupCmd builds the list/create pair shared by brands, categories and sizes.
func (c *cli) lookupCmd(kind string) *cobra.Command {
	cmd := &cobra.Command{Use: kind, Short: "Manage " + kind}

	type entry struct {
		ID    int64
		Name  string
		State bool
	}
	render := func(entries []entry) {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{id(e.ID), e.Name, yesNo(e.State)})
		}
		c.table([]string{"ID", "Name", "Active"}, rows)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + kind,
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			ctx := cmd.Context()
			var (
				entries []entry
				raw     any
			)
			switch kind {
			case "brands":
				items, err := client.ListBrands(ctx)
				if err != nil {
					return err
				}
				for _, b := range items {
					entries = append(entries, entry{b.ID, b.Name, b.State})
				}
				raw = items
			case "categories":
				items, err := client.ListCategories(ctx)
				if err != nil {
					return err
				}
				for _, b := range items {
					entries = append(entries, entry{b.ID, b.Name, b.State})
				}
				raw = items
			default:
				items, err := client.ListSizes(ctx)
				if err != nil {
					return err
				}
				for _, b := range items {
					entries = append(entries, entry{b.ID, b.Name, b.State})
				}
				raw = items
			}
			return c.emit(raw, func() { render(entries) })
		}),
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an entry in " + kind,
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			ctx := cmd.Context()
			var (
				created entry
				raw     any
			)
			switch kind {
			case "brands":
				b, err := client.CreateBrand(ctx, models.Brand{Name: name, State: true})
				if err != nil {
					return err
				}
				created, raw = entry{b.ID, b.Name, b.State}, b
			case "categories":
				b, err := client.CreateCategory(ctx, models.Category{Name: name, State: true})
				if err != nil {
					return err
				}
				created, raw = entry{b.ID, b.Name, b.State}, b
			default:
				b, err := client.CreateSize(ctx, models.Size{Name: name, State: true})
				if err != nil {
					return err
				}
				created, raw = entry{b.ID, b.Name, b.State}, b
			}
			return c.emit(raw, func() { render([]entry{created}) })
		}),
	}
	create.Flags().StringVar(&name, "name", "", "display name")

	cmd.AddCommand(list, create)
	return cmd
}
