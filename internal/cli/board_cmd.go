package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive dispatch board",
		Long: `Open the full-screen dispatch board. Drag orders between days and
trucks with the mouse, drop one order onto another to form a run, and
drag the sidebar palette onto the grid to create runs and notes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the board requires an interactive terminal")
			}
			p := tea.NewProgram(
				newAppModel(app, newBoardView(app.state())),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err := p.Run()
			return err
		},
	}
}
