package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gastos/internal/core"
)

var importNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestExportCanonicalFormat(t *testing.T) {
	expenses := []core.Expense{
		{Description: "Mercado", Amount: core.Money{Cents: 15050}, Date: core.NewDate(2024, 2, 10), Category: "Comida"},
		{Description: "Cinema", Amount: core.Money{Cents: 4500}, Date: core.NewDate(2024, 2, 15), Category: "Lazer"},
	}

	var buf bytes.Buffer
	if err := Export(&buf, expenses); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := "data,categoria,descricao,valor\n" +
		"2024-02-10,Comida,Mercado,150.50\n" +
		"2024-02-15,Lazer,Cinema,45.00\n"
	if buf.String() != want {
		t.Fatalf("export = %q, want %q", buf.String(), want)
	}
}

func TestMapHeader(t *testing.T) {
	t.Run("portuguese", func(t *testing.T) {
		m, ok := MapHeader([]string{"data", "categoria", "descricao", "valor"})
		if !ok {
			t.Fatal("not recognized as header")
		}
		if m != (ColumnMap{Date: 0, Category: 1, Description: 2, Amount: 3}) {
			t.Fatalf("map = %+v", m)
		}
	})

	t.Run("english reordered", func(t *testing.T) {
		m, ok := MapHeader([]string{"Amount", "Description", "Date", "Category"})
		if !ok {
			t.Fatal("not recognized as header")
		}
		if m != (ColumnMap{Date: 2, Category: 3, Description: 1, Amount: 0}) {
			t.Fatalf("map = %+v", m)
		}
	})

	t.Run("typo within tolerance", func(t *testing.T) {
		m, ok := MapHeader([]string{"dataa", "catgoria", "descripton", "vallor"})
		if !ok {
			t.Fatal("not recognized as header")
		}
		if m != (ColumnMap{Date: 0, Category: 1, Description: 2, Amount: 3}) {
			t.Fatalf("map = %+v", m)
		}
	})

	t.Run("no header falls back positional", func(t *testing.T) {
		m, ok := MapHeader([]string{"2024-01-01", "Comida", "Mercado", "10.00"})
		if ok {
			t.Fatal("data row recognized as header")
		}
		if m != (ColumnMap{Date: 0, Category: 1, Description: 2, Amount: 3}) {
			t.Fatalf("map = %+v", m)
		}
	})
}

func TestImportWithHeader(t *testing.T) {
	in := "date,amount,description,category\n" +
		"15/02/2024,\"45,00\",Cinema,Lazer\n" +
		"2024-03-01,200.00,Gasolina,Transporte\n"

	res, err := Import(strings.NewReader(in), importNow)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Problems) != 0 {
		t.Fatalf("problems = %v", res.Problems)
	}
	if len(res.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(res.Expenses))
	}

	first := res.Expenses[0]
	if first.Date.ISO() != "2024-02-15" || first.Amount.Cents != 4500 || first.Description != "Cinema" || first.Category != "Lazer" {
		t.Fatalf("first = %+v", first)
	}
	if first.ID == "" {
		t.Fatal("imported entry has no id")
	}
}

func TestImportHeaderlessFile(t *testing.T) {
	in := "2024-01-05,Casa,Aluguel,1200.00\n" +
		"2024-01-06,Comida,Mercado,80.00\n"

	res, err := Import(strings.NewReader(in), importNow)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2 (first row is data)", len(res.Expenses))
	}
	if res.Expenses[0].Description != "Aluguel" || res.Expenses[0].Amount.Cents != 120000 {
		t.Fatalf("first = %+v", res.Expenses[0])
	}
}

func TestImportDefaultsMalformedCells(t *testing.T) {
	in := "data,categoria,descricao,valor\n" +
		"not-a-date,,,abc\n"

	res, err := Import(strings.NewReader(in), importNow)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Expenses) != 1 {
		t.Fatalf("expenses = %d, want 1", len(res.Expenses))
	}
	e := res.Expenses[0]
	if e.Date.ISO() != "2024-06-15" {
		t.Errorf("date = %s, want today", e.Date.ISO())
	}
	if e.Amount.Cents != 0 {
		t.Errorf("cents = %d, want 0", e.Amount.Cents)
	}
	if e.Description != "Importado" {
		t.Errorf("description = %q", e.Description)
	}
	if e.Category != core.DefaultCategory {
		t.Errorf("category = %q, want %q", e.Category, core.DefaultCategory)
	}
	if len(res.Problems) != 2 {
		t.Errorf("problems = %d, want date and amount reported", len(res.Problems))
	}
}

func TestImportEmptyReader(t *testing.T) {
	res, err := Import(strings.NewReader(""), importNow)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Expenses) != 0 {
		t.Fatalf("expenses = %d, want 0", len(res.Expenses))
	}
}
