package core

import (
	"encoding/json"
	"testing"
)

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		ID:          "x",
		Description: "mercado",
		Amount:      Money{Cents: 1000},
		Date:        NewDate(2024, 1, 5),
		Category:    "Geral",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Description: "   ", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 5)},
		{Description: "a", Amount: Money{Cents: -1}, Date: NewDate(2024, 1, 5)},
		{Description: "a", Amount: Money{Cents: 1}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Errorf("case %d expected error", i)
		}
	}
}

func TestExpenseSameValue(t *testing.T) {
	base := Expense{Description: "luz", Amount: Money{Cents: 5000}, Date: NewDate(2024, 2, 10)}
	cases := []struct {
		name  string
		other Expense
		want  bool
	}{
		{"identical", Expense{Description: "luz", Amount: Money{Cents: 5000}, Date: NewDate(2024, 2, 10)}, true},
		{"within tolerance", Expense{Description: "luz", Amount: Money{Cents: 5001}, Date: NewDate(2024, 2, 10)}, true},
		{"amount off", Expense{Description: "luz", Amount: Money{Cents: 5002}, Date: NewDate(2024, 2, 10)}, false},
		{"different day", Expense{Description: "luz", Amount: Money{Cents: 5000}, Date: NewDate(2024, 2, 11)}, false},
		{"different description", Expense{Description: "gas", Amount: Money{Cents: 5000}, Date: NewDate(2024, 2, 10)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.SameValue(tc.other); got != tc.want {
				t.Errorf("SameValue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewRuleClampsDay(t *testing.T) {
	e := NewExpense("aluguel", Money{Cents: 120000}, NewDate(2024, 1, 31), "Casa")
	r := NewRule(e)
	if r.DayOfMonth != MaxRecurringDay {
		t.Fatalf("day = %d, want %d", r.DayOfMonth, MaxRecurringDay)
	}
	if !r.LastGenerated.SameDay(e.Date) {
		t.Fatalf("last generated = %s, want %s", r.LastGenerated.ISO(), e.Date.ISO())
	}
}

func TestNormalizeDefaults(t *testing.T) {
	doc := &Document{
		Expenses: []Expense{
			{Description: "sem categoria", Amount: Money{Cents: 100}, Date: NewDate(2024, 1, 1)},
		},
	}
	doc.Normalize()

	if doc.CategoryBudgets == nil || doc.RecurringRules == nil {
		t.Fatal("nil collections should become empty")
	}
	if doc.Expenses[0].Category != DefaultCategory {
		t.Fatalf("category = %q, want %q", doc.Expenses[0].Category, DefaultCategory)
	}
	if doc.Expenses[0].ID == "" {
		t.Fatal("missing ID should be assigned")
	}
}

func TestDocumentWireFormat(t *testing.T) {
	doc := NewDocument()
	doc.InitialBudget = Money{Cents: 250000}
	doc.Expenses = append(doc.Expenses, Expense{
		ID:          "abc",
		Description: "mercado",
		Amount:      Money{Cents: 1550},
		Date:        NewDate(2024, 3, 2),
		Category:    "Alimentação",
	})
	doc.CategoryBudgets["Alimentação"] = Money{Cents: 50000}
	doc.RecurringRules = append(doc.RecurringRules, RecurringRule{
		Description:   "aluguel",
		Amount:        Money{Cents: 120000},
		DayOfMonth:    5,
		Category:      "Casa",
		LastGenerated: NewDate(2024, 2, 5),
	})

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Document
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.InitialBudget.Cents != 250000 {
		t.Errorf("initial budget = %d, want 250000", back.InitialBudget.Cents)
	}
	if len(back.Expenses) != 1 || back.Expenses[0].Date.ISO() != "2024-03-02" {
		t.Errorf("expenses did not round trip: %+v", back.Expenses)
	}
	if back.CategoryBudgets["Alimentação"].Cents != 50000 {
		t.Errorf("category budgets did not round trip: %+v", back.CategoryBudgets)
	}
	if len(back.RecurringRules) != 1 || back.RecurringRules[0].LastGenerated.ISO() != "2024-02-05" {
		t.Errorf("rules did not round trip: %+v", back.RecurringRules)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDocument()
	doc.Expenses = append(doc.Expenses, NewExpense("a", Money{Cents: 1}, NewDate(2024, 1, 1), ""))
	doc.CategoryBudgets["Casa"] = Money{Cents: 100}

	c := doc.Clone()
	c.Expenses[0].Description = "changed"
	c.CategoryBudgets["Casa"] = Money{Cents: 999}

	if doc.Expenses[0].Description != "a" {
		t.Fatal("clone shares expense backing array")
	}
	if doc.CategoryBudgets["Casa"].Cents != 100 {
		t.Fatal("clone shares budget map")
	}
}
