package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/store"
)

// RecurringProcessor materializes due occurrences of the recurring rules
// into concrete expenses. Running it any number of times on the same day
// yields the same ledger: each rule advances its LastGenerated watermark
// past every month it fills, and a matching entry already in the ledger
// is never duplicated.
type RecurringProcessor struct {
	store store.DocumentStore
	now   func() time.Time
}

func NewRecurringProcessor(st store.DocumentStore) *RecurringProcessor {
	return &RecurringProcessor{store: st, now: time.Now}
}

// NewRecurringProcessorWithClock pins "today" for tests.
func NewRecurringProcessorWithClock(st store.DocumentStore, now func() time.Time) *RecurringProcessor {
	return &RecurringProcessor{store: st, now: now}
}

// Run walks every rule, appends the occurrences due up to today, and
// returns how many were generated. The document is saved once, and only
// when at least one occurrence was generated.
func (p *RecurringProcessor) Run(ctx context.Context) (int, error) {
	doc, notice, err := p.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load document: %w", err)
	}
	if notice != nil {
		slog.WarnContext(ctx, "Recovered from corrupt document file",
			applog.FieldComponent, applog.ComponentRecurring,
			applog.FieldQuarantinePath, notice.QuarantinePath)
	}

	today := core.DateOf(p.now())
	generated := 0

	for i := range doc.RecurringRules {
		rule := &doc.RecurringRules[i]

		// A rule without history starts counting from today, with no
		// backfill of earlier months.
		if rule.LastGenerated.IsZero() {
			rule.LastGenerated = today
			continue
		}

		candidate := nextOccurrence(rule.LastGenerated, rule.DayOfMonth)
		for !candidate.AfterDay(today) {
			occurrence := core.Expense{
				Description: rule.Description,
				Amount:      rule.Amount,
				Date:        candidate,
				Category:    rule.Category,
			}
			if !containsSameValue(doc.Expenses, occurrence) {
				doc.Expenses = append(doc.Expenses, core.NewExpense(
					rule.Description, rule.Amount, candidate, rule.Category))
				generated++
			}
			rule.LastGenerated = candidate
			candidate = nextOccurrence(candidate, rule.DayOfMonth)
		}
	}

	if generated == 0 {
		return 0, nil
	}
	if err := p.store.Save(ctx, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}

	slog.InfoContext(ctx, "Recurring expenses generated",
		applog.FieldComponent, applog.ComponentRecurring,
		applog.FieldOperation, applog.OpApplyRules,
		applog.FieldCount, generated)
	return generated, nil
}

// nextOccurrence is the rule's day in the month after last. The day is
// clamped so the result exists in every month.
func nextOccurrence(last core.Date, day int) core.Date {
	if day < 1 {
		day = last.Day()
	}
	if day > core.MaxRecurringDay {
		day = core.MaxRecurringDay
	}
	return core.NewDate(last.Year(), last.Month()+1, day)
}

func containsSameValue(expenses []core.Expense, candidate core.Expense) bool {
	for _, e := range expenses {
		if e.SameValue(candidate) {
			return true
		}
	}
	return false
}
