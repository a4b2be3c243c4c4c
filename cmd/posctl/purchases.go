package main

import (
	"github.com/spf13/cobra"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/pkg/clients/api"
)

func (c *cli) purchasesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "purchases", Short: "Record supplier deliveries"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List purchases",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			purchases, err := client.ListPurchases(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(purchases, func() { c.purchaseTable(purchases...) })
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a purchase and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			purchaseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			purchase, err := client.GetPurchase(cmd.Context(), purchaseID)
			if err != nil {
				return err
			}
			return c.emit(purchase, func() {
				c.purchaseTable(purchase)
				c.lineTable(purchase.Details)
			})
		}),
	}

	var (
		in         models.PurchaseInput
		supplierID int64
		items      []string
		docStatus  string
		payStatus  string
	)
	create := &cobra.Command{
		Use:     "create",
		Short:   "Record a purchase and add its goods to branch stock",
		Example: `  posctl purchases create --branch 1 --supplier-name "Distribuidora Central" --item 12:10:450`,
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			details, err := parseLines(items)
			if err != nil {
				return err
			}
			in.Details = details
			if supplierID > 0 {
				in.SupplierID = &supplierID
			}
			in.DocumentStatus = models.DocumentStatus(docStatus)
			in.PaymentStatus = models.PaymentStatus(payStatus)

			purchase, err := client.CreatePurchase(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.emit(purchase, func() {
				c.purchaseTable(purchase)
				c.lineTable(purchase.Details)
			})
		}),
	}
	create.Flags().Int64Var(&in.BranchID, "branch", 0, "receiving branch id")
	create.Flags().Int64Var(&supplierID, "supplier-id", 0, "existing supplier id")
	create.Flags().StringVar(&in.SupplierName, "supplier-name", "", "create the supplier with this name")
	create.Flags().StringVar(&in.SupplierContact, "supplier-contact", "", "supplier contact person")
	create.Flags().StringVar(&in.SupplierPhone, "supplier-phone", "", "supplier phone")
	create.Flags().StringVar(&in.SupplierEmail, "supplier-email", "", "supplier e-mail")
	create.Flags().StringArrayVar(&items, "item", nil, "productId:quantity[:unitPrice] (repeatable)")
	create.Flags().StringVar(&docStatus, "document-status", "", "document status (default COMPLETADO)")
	create.Flags().StringVar(&payStatus, "payment-status", "", "payment status (default PENDIENTE)")

	cmd.AddCommand(list, get, create)
	return cmd
}

func (c *cli) purchaseTable(purchases ...models.PurchaseView) {
	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		supplier := id(p.SupplierID)
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		rows = append(rows, []string{
			id(p.ID),
			p.PurchaseDate.Local().Format("2006-01-02"),
			id(p.BranchID),
			supplier,
			money(p.TotalAmount),
			string(p.DocumentStatus),
			string(p.PaymentStatus),
		})
	}
	c.table([]string{"ID", "Date", "Branch", "Supplier", "Total", "Document", "Payment"}, rows)
}
