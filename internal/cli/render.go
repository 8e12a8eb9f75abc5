package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gastos/internal/core"
)

var (
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorWarn   = lipgloss.Color("#DA702C")
	colorAlert  = lipgloss.Color("#D14D41")
	colorGood   = lipgloss.Color("#879A39")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	dimStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAlert)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGood)
)

// table is a bordered text table. Column widths come from the widest
// cell; the first column is left-aligned, the rest right-aligned.
type table struct {
	Headers []string
	Rows    [][]string
}

func renderTable(t table) string {
	numCols := len(t.Headers)
	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	border := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	border("╭", "┬", "╮")

	b.WriteString(dimStyle.Render("│"))
	for i, h := range t.Headers {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
		b.WriteString(dimStyle.Render("│"))
	}
	b.WriteString("\n")
	border("├", "┼", "┤")

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	border("╰", "┴", "╯")
	return b.String()
}

// expenseRows renders the filtered view with 1-based positions, the
// same positions delete and edit accept.
func expenseRows(expenses []core.Expense) table {
	rows := make([][]string, 0, len(expenses))
	for i, e := range expenses {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Date.ISO(),
			e.Category,
			e.Description,
			e.Amount.String(),
		})
	}
	return table{
		Headers: []string{"#", "Data", "Categoria", "Descricao", "Valor"},
		Rows:    rows,
	}
}

func renderBudgetAlert(a *core.BudgetAlert) string {
	return alertStyle.Render(fmt.Sprintf(
		"Budget exceeded for %s: spent %s of %s this month",
		a.Category, a.Spent, a.Ceiling))
}

func renderRemaining(remaining core.Money) string {
	s := fmt.Sprintf("Remaining: %s", remaining)
	if remaining.Cents < 0 {
		return warnStyle.Render(s)
	}
	return goodStyle.Render(s)
}
