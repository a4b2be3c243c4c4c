package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/pkg/clients/api"
)

func (c *cli) stockCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "stock", Short: "Show stock levels"}

	branch := &cobra.Command{
		Use:   "branch ID",
		Short: "Stock held by a branch",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			branchID, err := parseID(args[0])
			if err != nil {
				return err
			}
			rows, err := client.StockByBranch(cmd.Context(), branchID)
			if err != nil {
				return err
			}
			return c.emit(rows, func() { c.stockTable(rows) })
		}),
	}

	product := &cobra.Command{
		Use:   "product ID",
		Short: "Stock of a product in every branch",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			rows, err := client.StockByProduct(cmd.Context(), productID)
			if err != nil {
				return err
			}
			return c.emit(rows, func() { c.stockTable(rows) })
		}),
	}

	cmd.AddCommand(branch, product)
	return cmd
}

func (c *cli) stockTable(rows []models.StockView) {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		product, branch := id(r.ProductID), id(r.BranchID)
		if r.Product != nil {
			product = r.Product.Name
		}
		if r.Branch != nil {
			branch = r.Branch.Name
		}
		out = append(out, []string{product, branch, fmt.Sprint(r.Quantity)})
	}
	c.table([]string{"Product", "Branch", "Quantity"}, out)
}

func (c *cli) movementsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "movements",
		Short: "List the latest inventory movements",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			moves, err := client.Movements(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.emit(moves, func() { c.movementTable(moves) })
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum movements to show")
	return cmd
}

func (c *cli) movementTable(moves []models.MovementView) {
	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		product, branch := id(m.ProductID), id(m.BranchID)
		if m.Product != nil {
			product = m.Product.Name
		}
		if m.Branch != nil {
			branch = m.Branch.Name
		}
		rows = append(rows, []string{
			m.Date.Local().Format("2006-01-02 15:04"),
			string(m.Type),
			product,
			branch,
			fmt.Sprint(m.Quantity),
			m.Description,
		})
	}
	c.table([]string{"Date", "Type", "Product", "Branch", "Qty", "Description"}, rows)
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show sales totals, low stock and recent activity",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			stats, err := client.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(stats, func() {
				c.title("Total sales: Q %.2f", stats.TotalSales)

				c.title("Last 7 days")
				week := make([][]string, 0, len(stats.WeeklySales))
				for _, p := range stats.WeeklySales {
					week = append(week, []string{p.Day, fmt.Sprintf("%.2f", p.Amount)})
				}
				c.table([]string{"Day", "Amount"}, week)

				c.title("Low stock")
				if len(stats.LowStockProducts) == 0 {
					c.println("none")
				} else {
					c.productTable(stats.LowStockProducts...)
				}

				c.title("Recent movements")
				c.movementTable(stats.RecentMovements)
			})
		}),
	}
}
