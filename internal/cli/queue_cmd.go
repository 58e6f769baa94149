package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/haulboard/internal/domain"
)

func newQueueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Open the production queue",
		Long: `Open the full-screen production queue. Each row is a vendor and box
category; each cell shows scheduled quantity against the daily allotment.
Reorder lines, move them across days, and set per-date overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the queue requires an interactive terminal")
			}
			p := tea.NewProgram(
				newAppModel(app, newQueueView(app.state())),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.AddCommand(newQueueAddCmd(app))
	return cmd
}

func newQueueAddCmd(app *App) *cobra.Command {
	var id, vendorID int64
	var category, date, description string
	var quantity, seq int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a production line to a capacity bin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidBoxCategories[category] {
				return fmt.Errorf("invalid category %q (rsc, die_cut, sheet)", category)
			}
			d, err := time.Parse(domain.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}

			now := time.Now().UTC()
			l := &domain.QueueLine{
				ID:          id,
				VendorID:    vendorID,
				Category:    domain.BoxCategory(category),
				Date:        d,
				Seq:         seq,
				Quantity:    quantity,
				Description: description,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := app.Queue.CreateLine(context.Background(), l); err != nil {
				return err
			}

			fmt.Printf("Added line %d: %s x%d on %s\n", l.ID, l.Description, l.Quantity, date)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Line ID")
	cmd.Flags().Int64Var(&vendorID, "vendor", 0, "Vendor ID")
	cmd.Flags().StringVar(&category, "category", "", "Box category (rsc, die_cut, sheet)")
	cmd.Flags().StringVar(&date, "date", "", "Production date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity of boxes")
	cmd.Flags().IntVar(&seq, "seq", 1000, "Ordinal within the bin")
	cmd.Flags().StringVar(&description, "description", "", "Line description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}
