// Package sqlite is an alternate durable backend. It keeps the
// whole-document persistence model: Load reads everything, Save replaces
// everything in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/store"

	_ "modernc.org/sqlite"
)

const initialBudgetKey = "initial_budget_cents"

type Store struct {
	db        *sql.DB
	backupDir string
	now       func() time.Time
}

func New(dbPath, backupDir string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, backupDir: backupDir, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*core.Document, *store.CorruptionNotice, error) {
	doc := core.NewDocument()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount_cents, date, category FROM expenses ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e       core.Expense
			cents   int64
			dateStr string
		)
		if err := rows.Scan(&e.ID, &e.Description, &cents, &dateStr, &e.Category); err != nil {
			return nil, nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = core.Money{Cents: cents}
		e.Date = parseStoredDate(dateStr)
		doc.Expenses = append(doc.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate expenses: %w", err)
	}

	ruleRows, err := s.db.QueryContext(ctx,
		`SELECT description, amount_cents, day_of_month, category, last_generated FROM recurring_rules ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query recurring rules: %w", err)
	}
	defer ruleRows.Close()
	for ruleRows.Next() {
		var (
			r       core.RecurringRule
			cents   int64
			day     int64
			lastGen string
		)
		if err := ruleRows.Scan(&r.Description, &cents, &day, &r.Category, &lastGen); err != nil {
			return nil, nil, fmt.Errorf("scan recurring rule: %w", err)
		}
		r.Amount = core.Money{Cents: cents}
		r.DayOfMonth = int(day)
		r.LastGenerated = parseStoredDate(lastGen)
		doc.RecurringRules = append(doc.RecurringRules, r)
	}
	if err := ruleRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate recurring rules: %w", err)
	}

	budgetRows, err := s.db.QueryContext(ctx,
		`SELECT category, ceiling_cents FROM category_budgets`)
	if err != nil {
		return nil, nil, fmt.Errorf("query category budgets: %w", err)
	}
	defer budgetRows.Close()
	for budgetRows.Next() {
		var (
			category string
			cents    int64
		)
		if err := budgetRows.Scan(&category, &cents); err != nil {
			return nil, nil, fmt.Errorf("scan category budget: %w", err)
		}
		doc.CategoryBudgets[category] = core.Money{Cents: cents}
	}
	if err := budgetRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate category budgets: %w", err)
	}

	var budgetStr string
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, initialBudgetKey).Scan(&budgetStr)
	switch {
	case err == sql.ErrNoRows:
		// absent budget defaults to zero
	case err != nil:
		return nil, nil, fmt.Errorf("query initial budget: %w", err)
	default:
		cents, err := strconv.ParseInt(budgetStr, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parse stored initial budget %q: %w", budgetStr, err)
		}
		doc.InitialBudget = core.Money{Cents: cents}
	}

	doc.Normalize()
	return doc, nil, nil
}

// Save replaces the stored document in a single transaction, mirroring
// the jsonfile backend's all-or-nothing replace.
func (s *Store) Save(ctx context.Context, doc *core.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expenses", "recurring_rules", "category_budgets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, e := range doc.Expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (position, id, description, amount_cents, date, category) VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Description, e.Amount.Cents, e.Date.ISO(), e.Category)
		if err != nil {
			return fmt.Errorf("insert expense %d: %w", i, err)
		}
	}

	for i, r := range doc.RecurringRules {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recurring_rules (position, description, amount_cents, day_of_month, category, last_generated) VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.Description, r.Amount.Cents, r.DayOfMonth, r.Category, r.LastGenerated.ISO())
		if err != nil {
			return fmt.Errorf("insert recurring rule %d: %w", i, err)
		}
	}

	for category, ceiling := range doc.CategoryBudgets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO category_budgets (category, ceiling_cents) VALUES (?, ?)`,
			category, ceiling.Cents)
		if err != nil {
			return fmt.Errorf("insert category budget %q: %w", category, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		initialBudgetKey, strconv.FormatInt(doc.InitialBudget.Cents, 10))
	if err != nil {
		return fmt.Errorf("store initial budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}

	slog.DebugContext(ctx, "Document saved",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldOperation, applog.OpSave,
		applog.FieldBackend, "sqlite",
		applog.FieldCount, len(doc.Expenses))
	return nil
}

// Backup writes a timestamped JSON snapshot, the same portable format the
// jsonfile backend persists.
func (s *Store) Backup(ctx context.Context) (string, error) {
	doc, _, err := s.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load for backup: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	dest := filepath.Join(s.backupDir, store.TimestampedName("backup", "json", s.now()))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}

	slog.InfoContext(ctx, "Backup written",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldOperation, applog.OpBackup,
		applog.FieldBackend, "sqlite",
		applog.FieldBackupPath, dest)
	return dest, nil
}

// parseStoredDate trusts our own writer but tolerates hand-edited rows:
// anything unparsable becomes the zero date, matching the document
// format's lenient date handling.
func parseStoredDate(s string) core.Date {
	if s == "" {
		return core.Date{}
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}
	}
	return d
}
