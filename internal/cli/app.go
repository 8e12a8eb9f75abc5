package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"gastos/internal/config"
	applog "gastos/internal/log"
	"gastos/internal/query"
	"gastos/internal/services"
	"gastos/internal/store"
	"gastos/internal/store/jsonfile"
	"gastos/internal/store/memory"
	"gastos/internal/store/sqlite"
)

// app bundles everything a command needs: the configured store backend,
// the ledger service with its undo history, and the recurrence engine.
type app struct {
	cfg       *config.Config
	store     store.DocumentStore
	ledger    *services.LedgerService
	recurring *services.RecurringProcessor

	closeStore func() error
}

// openApp loads the environment, configuration, and logging, wires the
// configured backend, and restores the undo history from its state
// file. Pair every successful openApp with a Close.
func openApp() (*app, error) {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.SlogLevel()
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentCLI})
	applog.SetDefault(logger)

	a := &app{cfg: cfg}
	switch cfg.DataBackend {
	case "jsonfile":
		a.store = jsonfile.New(cfg.DocumentPath, cfg.BackupDir)
	case "sqlite":
		st, err := sqlite.New(cfg.SQLiteDBPath, cfg.BackupDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		a.store = st
		a.closeStore = st.Close
	case "memory":
		a.store = memory.New()
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}

	undo := services.NewUndoBuffer(cfg.UndoDepth)
	if err := restoreUndoState(cfg.UndoStatePath, undo); err != nil {
		slog.Warn("Undo history unreadable, starting empty",
			applog.FieldPath, cfg.UndoStatePath, applog.FieldError, err)
	}

	a.ledger = services.NewLedgerService(a.store, undo)
	a.recurring = services.NewRecurringProcessor(a.store)
	return a, nil
}

// Close persists the undo history and releases the backend.
func (a *app) Close() error {
	if err := saveUndoState(a.cfg.UndoStatePath, a.ledger.UndoBuffer()); err != nil {
		slog.Warn("Could not persist undo history",
			applog.FieldPath, a.cfg.UndoStatePath, applog.FieldError, err)
	}
	if a.closeStore != nil {
		return a.closeStore()
	}
	return nil
}

// materialize runs the recurrence engine. Commands that show or mutate
// the ledger call it first so due monthly charges are present.
func (a *app) materialize(ctx context.Context) {
	n, err := a.recurring.Run(ctx)
	if err != nil {
		slog.Warn("Recurring materialization failed", applog.FieldError, err)
		return
	}
	if n > 0 {
		fmt.Printf("Generated %d recurring expense(s).\n", n)
	}
}

// activeFilter assembles the shared filter flags. A month without a
// year (or the reverse) filters nothing date-wise.
func activeFilter() query.Filter {
	return query.Filter{
		Month:    flagMonth,
		Year:     flagYear,
		Category: flagCategory,
		Term:     flagSearch,
	}
}

func restoreUndoState(path string, undo *services.UndoBuffer) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var entries []services.Deletion
	if err := json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	undo.Restore(entries)
	return nil
}

func saveUndoState(path string, undo *services.UndoBuffer) error {
	entries := undo.Snapshot()
	if len(entries) == 0 {
		// Nothing to undo: drop the state file instead of writing [].
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	raw, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
