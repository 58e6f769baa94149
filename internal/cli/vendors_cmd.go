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

func newVendorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage corrugator vendors and their allotments",
	}

	cmd.AddCommand(
		newVendorsAddCmd(app),
		newVendorsListCmd(app),
		newVendorsAllotCmd(app),
	)

	return cmd
}

func newVendorsAddCmd(app *App) *cobra.Command {
	var id int64
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vendor",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			v := &domain.Vendor{
				ID:        id,
				Name:      name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Queue.CreateVendor(context.Background(), v); err != nil {
				return err
			}
			fmt.Printf("Created vendor %d %q\n", v.ID, v.Name)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Vendor ID")
	cmd.Flags().StringVar(&name, "name", "", "Vendor name")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newVendorsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vendors and their default allotments",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Queue.Snapshot(context.Background(), contract.WeekWindow(time.Now()))
			if err != nil {
				return err
			}
			if len(snap.Vendors) == 0 {
				fmt.Println(formatter.Dim("no vendors"))
				return nil
			}

			byVendor := map[int64][]*domain.VendorAllotment{}
			for _, a := range snap.Allotments {
				byVendor[a.VendorID] = append(byVendor[a.VendorID], a)
			}
			for _, v := range snap.Vendors {
				fmt.Printf("%4d  %s\n", v.ID, v.Name)
				for _, a := range byVendor[v.ID] {
					fmt.Printf("      %-8s %d/day\n", a.Category, a.Quantity)
				}
			}
			return nil
		},
	}
}

func newVendorsAllotCmd(app *App) *cobra.Command {
	var vendorID int64
	var category string
	var quantity int

	cmd := &cobra.Command{
		Use:   "allot",
		Short: "Set a vendor's default daily allotment for a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidBoxCategories[category] {
				return fmt.Errorf("invalid category %q (rsc, die_cut, sheet)", category)
			}
			a := &domain.VendorAllotment{
				VendorID: vendorID,
				Category: domain.BoxCategory(category),
				Quantity: quantity,
			}
			if err := app.Queue.SetAllotment(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Vendor %d now allots %d %s/day\n", vendorID, quantity, category)
			return nil
		},
	}

	cmd.Flags().Int64Var(&vendorID, "vendor", 0, "Vendor ID")
	cmd.Flags().StringVar(&category, "category", "", "Box category (rsc, die_cut, sheet)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Boxes per day")
	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}
