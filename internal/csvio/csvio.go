// Package csvio reads and writes the ledger's CSV interchange format.
// Exports always use the canonical header; imports accept files with the
// columns in any order, Portuguese or English names, and small typos in
// the header.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"gastos/internal/core"
)

// Canonical export column order.
var exportHeader = []string{"data", "categoria", "descricao", "valor"}

// headerSynonyms maps accepted column names to the canonical column.
var headerSynonyms = map[string]string{
	"data":        "data",
	"date":        "data",
	"dia":         "data",
	"categoria":   "categoria",
	"category":    "categoria",
	"descricao":   "descricao",
	"descrição":   "descricao",
	"description": "descricao",
	"desc":        "descricao",
	"valor":       "valor",
	"value":       "valor",
	"amount":      "valor",
}

// maxHeaderDistance tolerates single-typo headers ("descripton",
// "catgoria"). At 2 ordinary words start colliding ("casa" is two
// edits from "data"), misreading data rows as headers.
const maxHeaderDistance = 1

// Export writes every expense in the canonical column order, amounts
// with two decimals.
func Export(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range expenses {
		rec := []string{e.Date.ISO(), e.Category, e.Description, e.Amount.String()}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ColumnMap resolves which CSV column holds which expense field.
// A value of -1 means the column is absent.
type ColumnMap struct {
	Date        int
	Category    int
	Description int
	Amount      int
}

// MapHeader resolves a header row to a ColumnMap. Names are matched
// case-insensitively against known synonyms, then by edit distance for
// near-misses. When the row does not look like a header at all, the
// positional fallback mirrors the export order: date, category,
// description, with the amount in the last column.
func MapHeader(header []string) (ColumnMap, bool) {
	m := ColumnMap{Date: -1, Category: -1, Description: -1, Amount: -1}
	matched := false

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		canonical, ok := headerSynonyms[name]
		if !ok {
			canonical, ok = nearestSynonym(name)
		}
		if !ok {
			continue
		}
		matched = true
		switch canonical {
		case "data":
			m.Date = i
		case "categoria":
			m.Category = i
		case "descricao":
			m.Description = i
		case "valor":
			m.Amount = i
		}
	}
	if matched {
		return m, true
	}

	m.Date = 0
	if len(header) > 1 {
		m.Category = 1
	}
	if len(header) > 2 {
		m.Description = 2
	}
	m.Amount = len(header) - 1
	return m, false
}

func nearestSynonym(name string) (string, bool) {
	// Short names like "id" sit within edit distance of real synonyms;
	// only longer names are worth a fuzzy match.
	if len(name) < 4 {
		return "", false
	}
	best := ""
	bestDist := maxHeaderDistance + 1
	for synonym, canonical := range headerSynonyms {
		d := levenshtein.ComputeDistance(name, synonym)
		if d < bestDist {
			bestDist = d
			best = canonical
		}
	}
	return best, best != ""
}

// ImportResult reports what a CSV import produced. Row-level problems
// are collected, never fatal; a malformed cell falls back to a default.
type ImportResult struct {
	Expenses []core.Expense
	Problems []error
}

// Import parses expenses out of r. Missing or unparsable cells default:
// date to today, amount to zero, description to "Importado", category to
// the default. Each imported entry gets a fresh ID.
func Import(r io.Reader, now time.Time) (ImportResult, error) {
	res := ImportResult{}
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err == io.EOF {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}

	cols, isHeader := MapHeader(first)
	line := 1
	if !isHeader {
		// The first row is data, not a header.
		res.append(first, cols, now, line)
	}

	for {
		line++
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Problems = append(res.Problems, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		res.append(rec, cols, now, line)
	}
	return res, nil
}

func (res *ImportResult) append(rec []string, cols ColumnMap, now time.Time, line int) {
	cell := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date := core.DateOf(now)
	if raw := cell(cols.Date); raw != "" {
		if parsed, err := core.ParseDate(raw); err == nil {
			date = parsed
		} else {
			res.Problems = append(res.Problems, fmt.Errorf("line %d date %q: %w", line, raw, err))
		}
	}

	var amount core.Money
	if raw := cell(cols.Amount); raw != "" {
		if parsed, err := core.ParseDecimal(raw); err == nil {
			amount = parsed
		} else {
			res.Problems = append(res.Problems, fmt.Errorf("line %d amount %q: %w", line, raw, err))
		}
	}

	description := cell(cols.Description)
	if description == "" {
		description = "Importado"
	}

	res.Expenses = append(res.Expenses, core.NewExpense(description, amount, date, cell(cols.Category)))
}
