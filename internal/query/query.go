// Package query produces the deterministic filtered/sorted view over the
// ledger that every read-only consumer shares: listing, summary, and the
// position resolution behind delete/edit. It never mutates the document.
package query

import (
	"sort"
	"strings"
	"time"

	"gastos/internal/core"
)

// Filter narrows the ledger view. All fields are optional and combine
// with AND semantics. The date filter applies only when both Month and
// Year are set, expanding to the month's inclusive first..last day range.
type Filter struct {
	Month    int // 1-12, 0 means any
	Year     int // 0 means any
	Category string
	Term     string
}

// MonthRange returns the inclusive [first, last] days of a month.
func MonthRange(year, month int) (core.Date, core.Date) {
	first := core.NewDate(year, month, 1)
	last := core.NewDate(year, month+1, 0) // day 0 of next month
	return first, last
}

// Matches reports whether one expense passes the filter.
func (f Filter) Matches(e core.Expense) bool {
	if f.Month != 0 && f.Year != 0 {
		first, last := MonthRange(f.Year, f.Month)
		if e.Date.Time.Before(first.Time) || e.Date.Time.After(last.Time) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Term)); term != "" {
		desc := strings.ToLower(e.Description)
		cat := strings.ToLower(e.Category)
		if !strings.Contains(desc, term) && !strings.Contains(cat, term) {
			return false
		}
	}
	return true
}

// View returns the filtered ledger sorted by date descending. Equal dates
// order by ID ascending, so the view is total and stable across calls —
// what the user sees is exactly what delete and edit act on.
func View(doc *core.Document, f Filter) []core.Expense {
	out := make([]core.Expense, 0, len(doc.Expenses))
	for _, e := range doc.Expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.SameDay(out[j].Date) {
			return out[i].Date.AfterDay(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Summarize aggregates the filtered set: total spend, remaining initial
// budget, and per-category spend sorted by descending amount (name
// ascending on ties). Pure function, no side effects.
func Summarize(doc *core.Document, f Filter) core.Summary {
	s := core.Summary{InitialBudget: doc.InitialBudget}

	byCat := map[string]int64{}
	for _, e := range doc.Expenses {
		if !f.Matches(e) {
			continue
		}
		s.Total.Cents += e.Amount.Cents
		byCat[e.Category] += e.Amount.Cents
	}
	s.Remaining = core.Money{Cents: doc.InitialBudget.Cents - s.Total.Cents}

	s.ByCategory = make([]core.CategoryAmount, 0, len(byCat))
	for name, cents := range byCat {
		s.ByCategory = append(s.ByCategory, core.CategoryAmount{
			Name:   name,
			Amount: core.Money{Cents: cents},
		})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Amount.Cents != s.ByCategory[j].Amount.Cents {
			return s.ByCategory[i].Amount.Cents > s.ByCategory[j].Amount.Cents
		}
		return s.ByCategory[i].Name < s.ByCategory[j].Name
	})
	return s
}

// CheckBudget recomputes the current-month spend for a category and
// reports whether it exceeds the configured ceiling. Only the mutating
// add path calls this, so the alert fires once per triggering addition
// and never on reads.
func CheckBudget(doc *core.Document, category string, now time.Time) (*core.BudgetAlert, bool) {
	ceiling, ok := doc.CategoryBudgets[category]
	if !ok {
		return nil, false
	}

	f := Filter{Month: int(now.Month()), Year: now.Year(), Category: category}
	var spent int64
	for _, e := range doc.Expenses {
		if f.Matches(e) {
			spent += e.Amount.Cents
		}
	}
	if spent <= ceiling.Cents {
		return nil, false
	}
	return &core.BudgetAlert{
		Category: category,
		Spent:    core.Money{Cents: spent},
		Ceiling:  ceiling,
	}, true
}
