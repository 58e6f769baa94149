package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/haulboard/internal/cli/formatter"
	"github.com/alexanderramin/haulboard/internal/domain"
)

func newTrucksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trucks",
		Short: "Manage delivery trucks",
	}

	cmd.AddCommand(
		newTrucksAddCmd(app),
		newTrucksListCmd(app),
	)

	return cmd
}

func newTrucksAddCmd(app *App) *cobra.Command {
	var id int64
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a truck",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			t := &domain.Truck{
				ID:        id,
				Name:      name,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Board.CreateTruck(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created truck %d %q\n", t.ID, t.Name)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Truck ID")
	cmd.Flags().StringVar(&name, "name", "", "Truck name shown on the board")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTrucksListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trucks",
		RunE: func(cmd *cobra.Command, args []string) error {
			trucks, err := app.Board.ListTrucks(context.Background(), all)
			if err != nil {
				return err
			}
			if len(trucks) == 0 {
				fmt.Println(formatter.Dim("no trucks"))
				return nil
			}
			for _, t := range trucks {
				line := fmt.Sprintf("%4d  %s", t.ID, t.Name)
				if !t.Active {
					line += "  " + formatter.Dim("(inactive)")
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive trucks")

	return cmd
}
