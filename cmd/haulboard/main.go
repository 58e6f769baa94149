package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/haulboard/internal/cli"
	"github.com/alexanderramin/haulboard/internal/db"
	"github.com/alexanderramin/haulboard/internal/repository"
	"github.com/alexanderramin/haulboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.haulboard/haulboard.db
	dbPath := os.Getenv("HAULBOARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".haulboard", "haulboard.db")
	}

	// The TUI owns the terminal, so logs go to a file when requested and
	// are dropped otherwise.
	logOut, closeLog, err := newLogWriter(os.Getenv("HAULBOARD_LOG"))
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	orderRepo := repository.NewSQLiteOrderRepo(database)
	truckRepo := repository.NewSQLiteTruckRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)
	noteRepo := repository.NewSQLiteNoteRepo(database)
	vendorRepo := repository.NewSQLiteVendorRepo(database)
	queueRepo := repository.NewSQLiteQueueRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(logOut)

	boardSvc := service.NewBoardService(orderRepo, truckRepo, runRepo, noteRepo, uow, observer)
	queueSvc := service.NewQueueService(vendorRepo, queueRepo, uow, observer)

	notifier := service.NewNotifier()
	dispatcher := service.NewMutationDispatcher(boardSvc, queueSvc, notifier)

	app := &cli.App{
		Board:    boardSvc,
		Queue:    queueSvc,
		Remote:   dispatcher,
		Notifier: notifier,
		Logger:   logger,
	}

	// Detect interactive terminal for the full-screen entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogWriter opens the log sink at path, or a discard writer when path
// is empty.
func newLogWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
