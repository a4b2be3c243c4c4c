package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/pkg/clients/api"
)

func (c *cli) salesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sales", Short: "Register and review sales"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List sales",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			sales, err := client.ListSales(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(sales, func() { c.saleTable(sales...) })
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a sale and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			saleID, err := parseID(args[0])
			if err != nil {
				return err
			}
			sale, err := client.GetSale(cmd.Context(), saleID)
			if err != nil {
				return err
			}
			return c.emit(sale, func() {
				c.saleTable(sale)
				c.lineTable(sale.Details)
			})
		}),
	}

	var (
		in    models.SaleInput
		items []string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a sale after checking branch stock",
		Example: `  posctl sales create --branch 1 --item 12:2 --item 15:1
  posctl sales create --branch 1 --item 12:1 --customer "Ana Pérez" --phone 5555-1234`,
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			details, err := parseLines(items)
			if err != nil {
				return err
			}
			in.Details = details

			sale, err := client.CreateSaleChecked(cmd.Context(), in)
			var shortErr *api.ShortageError
			if errors.As(err, &shortErr) {
				c.shortages(shortErr.Shortages)
				return errors.New("sale not submitted")
			}
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && len(apiErr.Shortages) > 0 {
				c.shortages(apiErr.Shortages)
				return err
			}
			if err != nil {
				return err
			}
			return c.emit(sale, func() {
				c.saleTable(sale)
				c.lineTable(sale.Details)
			})
		}),
	}
	create.Flags().Int64Var(&in.BranchID, "branch", 0, "branch id")
	create.Flags().StringArrayVar(&items, "item", nil, "productId:quantity[:unitPrice] (repeatable)")
	create.Flags().StringVar(&in.CustomerName, "customer", "", "customer name (default: general customer)")
	create.Flags().StringVar(&in.CustomerEmail, "email", "", "customer e-mail")
	create.Flags().StringVar(&in.CustomerPhone, "phone", "", "customer phone")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Void a sale and return its goods to stock",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			saleID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteSale(cmd.Context(), saleID); err != nil {
				return err
			}
			c.println("sale %d voided", saleID)
			return nil
		}),
	}

	cmd.AddCommand(list, get, create, del)
	return cmd
}

func (c *cli) saleTable(sales ...models.SaleView) {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			id(s.ID),
			s.SaleDate.Local().Format("2006-01-02 15:04"),
			id(s.BranchID),
			s.CustomerName,
			money(s.TotalAmount),
			string(s.DocumentStatus),
		})
	}
	c.table([]string{"ID", "Date", "Branch", "Customer", "Total", "Status"}, rows)
}

func (c *cli) lineTable(lines []models.LineItem) {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{id(l.ProductID), fmt.Sprint(l.Quantity), money(l.UnitPrice), money(l.TotalPrice)})
	}
	c.table([]string{"Product", "Qty", "Unit", "Total"}, rows)
}

func (c *cli) shortages(list []models.Shortage) {
	c.println(warnStyle.Render("insufficient stock"))
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{id(s.ProductID), fmt.Sprint(s.Available), fmt.Sprint(s.Required)})
	}
	c.table([]string{"Product", "Available", "Required"}, rows)
}
