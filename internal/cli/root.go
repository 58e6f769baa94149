package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/haulboard/internal/board"
	"github.com/alexanderramin/haulboard/internal/service"
)

// App holds references to all service interfaces used by CLI commands, plus
// the shared drag engine state for the TUI views.
type App struct {
	Board    service.BoardService
	Queue    service.QueueService
	Remote   board.Remote
	Notifier *service.Notifier
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal; the TUI refuses to
	// start without one.
	IsInteractive func() bool

	shared *SharedState
}

// state returns the shared TUI state, creating the drag engine on first use.
// The engine's optimistic store outlives individual views, so switching
// between the board and the queue does not lose un-confirmed state.
func (a *App) state() *SharedState {
	if a.shared == nil {
		a.shared = &SharedState{
			App:    a,
			Engine: board.NewEngine(board.NewStore(), a.Remote, a.Logger),
		}
		if a.Notifier != nil {
			a.shared.Changes, _ = a.Notifier.Subscribe()
		}
	}
	return a.shared
}

// NewRootCmd creates the top-level "haulboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "haulboard",
		Short: "Dispatch board for delivery scheduling and production capacity",
	}

	root.AddCommand(
		newBoardCmd(app),
		newQueueCmd(app),
		newOrdersCmd(app),
		newTrucksCmd(app),
		newVendorsCmd(app),
	)

	return root
}
