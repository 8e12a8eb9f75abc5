package core

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to entries that carry no category.
const DefaultCategory = "Geral"

// MaxRecurringDay caps a recurring rule's day of month so that the
// materialized day exists in every month.
const MaxRecurringDay = 28

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDay       = errors.New("invalid day of month")
	ErrEmptyCategory    = errors.New("empty category")
)

type (
	// Expense is one ledger entry. Field tags follow the document file
	// format, which predates this implementation.
	Expense struct {
		ID          string `json:"id"`
		Description string `json:"descricao"`
		Amount      Money  `json:"valor"`
		Date        Date   `json:"data"`
		Category    string `json:"categoria"`
	}

	// RecurringRule is a template that yields one Expense per month.
	// LastGenerated marks the month of the most recent occurrence.
	RecurringRule struct {
		Description   string `json:"descricao"`
		Amount        Money  `json:"valor"`
		DayOfMonth    int    `json:"dia"`
		Category      string `json:"categoria"`
		LastGenerated Date   `json:"ultima_geracao"`
	}

	// Document is the whole persisted state and the unit of atomic
	// persistence; there is no finer-grained transaction.
	Document struct {
		Expenses        []Expense        `json:"gastos"`
		InitialBudget   Money            `json:"orcamento_inicial"`
		CategoryBudgets map[string]Money `json:"orcamentos_categoria"`
		RecurringRules  []RecurringRule  `json:"recorrentes"`
	}
)

// NewExpense builds an expense with a fresh ID. Empty categories collapse
// to DefaultCategory.
func NewExpense(description string, amount Money, date Date, category string) Expense {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Expense{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        date,
		Category:    category,
	}
}

// NewRule derives a recurring rule from its first occurrence. The day of
// month is clamped so every future month has it.
func NewRule(first Expense) RecurringRule {
	day := first.Date.Day()
	if day > MaxRecurringDay {
		day = MaxRecurringDay
	}
	if day < 1 {
		day = 1
	}
	return RecurringRule{
		Description:   first.Description,
		Amount:        first.Amount,
		DayOfMonth:    day,
		Category:      first.Category,
		LastGenerated: first.Date,
	}
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameValue reports value equality: description, date, and amount within
// one cent. Used where an ID is absent or not trustworthy.
func (e Expense) SameValue(other Expense) bool {
	if e.Description != other.Description {
		return false
	}
	if !e.Date.SameDay(other.Date) {
		return false
	}
	diff := e.Amount.Cents - other.Amount.Cents
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

func (r RecurringRule) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > MaxRecurringDay {
		return ErrInvalidDay
	}
	return nil
}

// NewDocument returns an empty, fully-populated document.
func NewDocument() *Document {
	return &Document{
		Expenses:        []Expense{},
		CategoryBudgets: map[string]Money{},
		RecurringRules:  []RecurringRule{},
	}
}

// Normalize applies the format's defaulting rules once at load, so
// downstream code never re-derives them: nil collections become empty,
// blank categories become DefaultCategory, and entries without an ID
// get one.
func (d *Document) Normalize() {
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.CategoryBudgets == nil {
		d.CategoryBudgets = map[string]Money{}
	}
	if d.RecurringRules == nil {
		d.RecurringRules = []RecurringRule{}
	}
	for i := range d.Expenses {
		if strings.TrimSpace(d.Expenses[i].Category) == "" {
			d.Expenses[i].Category = DefaultCategory
		}
		if d.Expenses[i].ID == "" {
			d.Expenses[i].ID = uuid.NewString()
		}
	}
	for i := range d.RecurringRules {
		if strings.TrimSpace(d.RecurringRules[i].Category) == "" {
			d.RecurringRules[i].Category = DefaultCategory
		}
	}
}

// Clone returns a deep copy. Callers that hand a document across an
// operation boundary copy it first, so nobody acts on shared state.
func (d *Document) Clone() *Document {
	out := &Document{
		InitialBudget:   d.InitialBudget,
		Expenses:        make([]Expense, len(d.Expenses)),
		CategoryBudgets: make(map[string]Money, len(d.CategoryBudgets)),
		RecurringRules:  make([]RecurringRule, len(d.RecurringRules)),
	}
	copy(out.Expenses, d.Expenses)
	copy(out.RecurringRules, d.RecurringRules)
	for k, v := range d.CategoryBudgets {
		out.CategoryBudgets[k] = v
	}
	return out
}

// Categories returns every category in use, budgeted or spent, sorted
// and deduplicated.
func (d *Document) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c == "" {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for name := range d.CategoryBudgets {
		add(name)
	}
	for _, e := range d.Expenses {
		add(e.Category)
	}
	sort.Strings(out)
	return out
}
