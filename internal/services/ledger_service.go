// Package services holds the mutating operations over the ledger: adding
// and editing entries, deletions with bounded undo, budget updates, and
// the monthly recurrence materialization. Every operation follows one
// read-modify-write cycle against the store and is all-or-nothing: the
// document is only saved after the whole mutation succeeded in memory.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/query"
	"gastos/internal/store"
)

// ErrNotFound means a delete/edit target resolved against a stale view
// could not be matched in the underlying ledger. Nothing was mutated.
var ErrNotFound = errors.New("expense not found in ledger")

// LedgerService orchestrates ledger mutations through the document store.
type LedgerService struct {
	store store.DocumentStore
	undo  *UndoBuffer
	now   func() time.Time
}

func NewLedgerService(st store.DocumentStore, undo *UndoBuffer) *LedgerService {
	if undo == nil {
		undo = NewUndoBuffer(DefaultUndoDepth)
	}
	return &LedgerService{store: st, undo: undo, now: time.Now}
}

// UndoBuffer exposes the deletion history, e.g. to persist it across CLI
// invocations.
func (s *LedgerService) UndoBuffer() *UndoBuffer {
	return s.undo
}

// Document loads the current document, surfacing a corruption recovery
// as a warning rather than a failure.
func (s *LedgerService) Document(ctx context.Context) (*core.Document, error) {
	doc, notice, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if notice != nil {
		slog.WarnContext(ctx, "Recovered from corrupt document file",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldQuarantinePath, notice.QuarantinePath)
	}
	return doc, nil
}

// AddInput is the raw user entry for a new expense. Amount and Date are
// boundary strings and get normalized here; an empty Date means today.
type AddInput struct {
	Description string
	Amount      string
	Date        string
	Category    string
	Recurring   bool
}

// AddExpense validates, appends, optionally registers a monthly rule
// seeded by this first occurrence, saves, and reports a budget alert if
// the category's current-month spend now exceeds its ceiling.
func (s *LedgerService) AddExpense(ctx context.Context, in AddInput) (core.Expense, *core.BudgetAlert, error) {
	if strings.TrimSpace(in.Description) == "" {
		return core.Expense{}, nil, core.ErrEmptyDescription
	}
	amount, err := core.ParseDecimal(in.Amount)
	if err != nil {
		return core.Expense{}, nil, fmt.Errorf("amount %q: %w", in.Amount, err)
	}
	date := core.DateOf(s.now())
	if strings.TrimSpace(in.Date) != "" {
		date, err = core.ParseDate(in.Date)
		if err != nil {
			return core.Expense{}, nil, fmt.Errorf("date %q: %w", in.Date, err)
		}
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return core.Expense{}, nil, err
	}

	expense := core.NewExpense(in.Description, amount, date, in.Category)
	doc.Expenses = append(doc.Expenses, expense)
	if in.Recurring {
		doc.RecurringRules = append(doc.RecurringRules, core.NewRule(expense))
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return core.Expense{}, nil, fmt.Errorf("save document: %w", err)
	}

	slog.InfoContext(ctx, "Expense added",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpAdd,
		applog.FieldExpenseID, expense.ID,
		applog.FieldExpenseDesc, expense.Description,
		applog.FieldAmountCents, expense.Amount.Cents,
		applog.FieldCategory, expense.Category)

	alert, _ := query.CheckBudget(doc, expense.Category, s.now())
	return expense, alert, nil
}

// DeleteExpense removes the entry at viewIndex of the filtered, sorted
// view, resolving it back to its position in the unfiltered ledger. The
// deletion is captured in the undo buffer only after the save succeeded.
func (s *LedgerService) DeleteExpense(ctx context.Context, f query.Filter, viewIndex int) (core.Expense, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	idx, err := s.resolveView(doc, f, viewIndex)
	if err != nil {
		return core.Expense{}, err
	}

	removed := doc.Expenses[idx]
	doc.Expenses = append(doc.Expenses[:idx], doc.Expenses[idx+1:]...)

	if err := s.store.Save(ctx, doc); err != nil {
		return core.Expense{}, fmt.Errorf("save document: %w", err)
	}
	s.undo.Push(Deletion{Expense: removed, Index: idx})

	slog.InfoContext(ctx, "Expense deleted",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, removed.ID,
		applog.FieldExpenseDesc, removed.Description)
	return removed, nil
}

// EditInput carries the fields to change; empty strings keep the current
// value. Category changes are done by delete+add, as in the original
// entry dialog.
type EditInput struct {
	Description string
	Amount      string
	Date        string
}

// EditExpense updates the entry at viewIndex of the filtered view.
// All inputs are validated before anything is mutated.
func (s *LedgerService) EditExpense(ctx context.Context, f query.Filter, viewIndex int, in EditInput) (core.Expense, error) {
	var (
		amount    core.Money
		date      core.Date
		hasAmount bool
		hasDate   bool
		err       error
	)
	if strings.TrimSpace(in.Amount) != "" {
		amount, err = core.ParseDecimal(in.Amount)
		if err != nil {
			return core.Expense{}, fmt.Errorf("amount %q: %w", in.Amount, err)
		}
		hasAmount = true
	}
	if strings.TrimSpace(in.Date) != "" {
		date, err = core.ParseDate(in.Date)
		if err != nil {
			return core.Expense{}, fmt.Errorf("date %q: %w", in.Date, err)
		}
		hasDate = true
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	idx, err := s.resolveView(doc, f, viewIndex)
	if err != nil {
		return core.Expense{}, err
	}

	e := &doc.Expenses[idx]
	if strings.TrimSpace(in.Description) != "" {
		e.Description = strings.TrimSpace(in.Description)
	}
	if hasAmount {
		e.Amount = amount
	}
	if hasDate {
		e.Date = date
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return core.Expense{}, fmt.Errorf("save document: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpEdit,
		applog.FieldExpenseID, e.ID)
	return *e, nil
}

// Undo restores the most recently deleted expense at its captured ledger
// position, clamped to the current length. An empty buffer is a reported
// no-op, not an error.
func (s *LedgerService) Undo(ctx context.Context) (core.Expense, bool, error) {
	d, ok := s.undo.Pop()
	if !ok {
		return core.Expense{}, false, nil
	}

	doc, err := s.Document(ctx)
	if err != nil {
		s.undo.Push(d)
		return core.Expense{}, false, err
	}

	idx := d.Index
	if idx > len(doc.Expenses) {
		idx = len(doc.Expenses)
	}
	if idx < 0 {
		idx = 0
	}
	doc.Expenses = append(doc.Expenses, core.Expense{})
	copy(doc.Expenses[idx+1:], doc.Expenses[idx:])
	doc.Expenses[idx] = d.Expense

	if err := s.store.Save(ctx, doc); err != nil {
		s.undo.Push(d)
		return core.Expense{}, false, fmt.Errorf("save document: %w", err)
	}

	slog.InfoContext(ctx, "Deletion undone",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpUndo,
		applog.FieldExpenseID, d.Expense.ID,
		applog.FieldExpenseDesc, d.Expense.Description)
	return d.Expense, true, nil
}

// SetInitialBudget overwrites the overall budget.
func (s *LedgerService) SetInitialBudget(ctx context.Context, amount string) error {
	m, err := core.ParseDecimal(amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", amount, err)
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	doc.InitialBudget = m
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// SetCategoryBudget creates or overwrites one category ceiling.
func (s *LedgerService) SetCategoryBudget(ctx context.Context, category, amount string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return core.ErrEmptyCategory
	}
	m, err := core.ParseDecimal(amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", amount, err)
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	doc.CategoryBudgets[category] = m
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// AppendExpenses appends pre-normalized entries (e.g. a CSV import
// batch) in one save. Returns how many were appended.
func (s *LedgerService) AppendExpenses(ctx context.Context, expenses []core.Expense) (int, error) {
	if len(expenses) == 0 {
		return 0, nil
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return 0, err
	}
	doc.Expenses = append(doc.Expenses, expenses...)
	doc.Normalize()
	if err := s.store.Save(ctx, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}

	slog.InfoContext(ctx, "Expenses appended",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpImport,
		applog.FieldCount, len(expenses))
	return len(expenses), nil
}

// ReplaceDocument swaps the whole document for the contents of an
// external JSON file. An unreadable or unparsable source aborts with
// nothing written.
func (s *LedgerService) ReplaceDocument(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	doc := core.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("parse import file: %w", err)
	}
	doc.Normalize()

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	slog.InfoContext(ctx, "Document replaced from import",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpImport,
		applog.FieldPath, path,
		applog.FieldCount, len(doc.Expenses))
	return nil
}

// resolveView maps a position in the filtered, sorted view back to the
// index of the same entry in the unfiltered ledger: by ID when the entry
// has one, else by value equality. This keeps delete and edit correct
// under an active filter.
func (s *LedgerService) resolveView(doc *core.Document, f query.Filter, viewIndex int) (int, error) {
	view := query.View(doc, f)
	if viewIndex < 0 || viewIndex >= len(view) {
		return 0, fmt.Errorf("view position %d of %d: %w", viewIndex, len(view), ErrNotFound)
	}
	target := view[viewIndex]

	if target.ID != "" {
		for i, e := range doc.Expenses {
			if e.ID == target.ID {
				return i, nil
			}
		}
	}
	for i, e := range doc.Expenses {
		if e.SameValue(target) {
			return i, nil
		}
	}
	return 0, ErrNotFound
}
