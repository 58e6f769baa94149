package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/haulboard/internal/cli/formatter"
	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

func newOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage orders",
	}

	cmd.AddCommand(
		newOrdersAddCmd(app),
		newOrdersListCmd(app),
	)

	return cmd
}

func newOrdersAddCmd(app *App) *cobra.Command {
	var id int64
	var kind, customer, date string
	var quantity int
	var truckID int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an order on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidOrderKinds[kind] {
				return fmt.Errorf("invalid kind %q (inbound, outbound)", kind)
			}

			now := time.Now().UTC()
			o := &domain.Order{
				ID:        id,
				Kind:      domain.OrderKind(kind),
				Customer:  customer,
				Quantity:  quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if date != "" {
				d, err := time.Parse(domain.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				o.Date = &d
				if o.Kind == domain.OrderOutbound {
					if !cmd.Flags().Changed("truck") {
						return fmt.Errorf("a scheduled outbound order needs --truck")
					}
					o.TruckID = &truckID
				}
			}

			if err := app.Board.CreateOrder(context.Background(), o); err != nil {
				return err
			}

			fmt.Printf("Created %s order %d for %s\n", o.Kind, o.ID, o.Customer)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Order ID from the ERP")
	cmd.Flags().StringVar(&kind, "kind", "outbound", "Order kind (inbound, outbound)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Pallet count")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD), empty for unscheduled")
	cmd.Flags().Int64Var(&truckID, "truck", 0, "Truck ID for a scheduled outbound order")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func newOrdersListCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders in a week window",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if from != "" {
				d, err := time.Parse(domain.DateLayout, from)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", from, err)
				}
				day = d
			}
			win := contract.WeekWindow(day)

			orders, err := app.Board.ListOrders(context.Background(), win)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println(formatter.Dim("no orders in window"))
				return nil
			}

			fmt.Println(formatter.Bold(fmt.Sprintf("%-16s %-20s %6s  %-10s %s",
				"REF", "CUSTOMER", "QTY", "DATE", "SLOT")))
			for _, o := range orders {
				dateStr := "-"
				slot := "unscheduled"
				if o.Date != nil {
					dateStr = o.Date.Format(domain.DateLayout)
					if o.TruckID != nil {
						slot = fmt.Sprintf("truck %d", *o.TruckID)
					} else {
						slot = "dock"
					}
					if o.RunID != nil {
						slot += " (run)"
					}
				}
				fmt.Printf("%-16s %-20s %6d  %-10s %s\n",
					o.Ref(), o.Customer, o.Quantity, dateStr, slot)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Any day in the week to list (YYYY-MM-DD), default today")

	return cmd
}
