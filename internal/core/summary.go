package core

// CategoryAmount is spend aggregated under one category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Summary is the aggregate view over a (possibly filtered) set of
// expenses: total spend, what remains of the initial budget, and the
// per-category breakdown sorted by descending spend.
type Summary struct {
	InitialBudget Money
	Total         Money
	Remaining     Money
	ByCategory    []CategoryAmount
}

// BudgetAlert signals that a category's current-month spend exceeds its
// configured ceiling. Informational, never an error.
type BudgetAlert struct {
	Category string
	Spent    Money
	Ceiling  Money
}
