package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gastos/internal/query"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals by category and remaining budget",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	a.materialize(ctx)

	doc, err := a.ledger.Document(ctx)
	if err != nil {
		return err
	}

	s := query.Summarize(doc, activeFilter())

	rows := make([][]string, 0, len(s.ByCategory)+1)
	for _, c := range s.ByCategory {
		rows = append(rows, []string{c.Name, c.Amount.String()})
	}
	rows = append(rows, []string{"Total", s.Total.String()})

	fmt.Print(renderTable(table{
		Headers: []string{"Categoria", "Valor"},
		Rows:    rows,
	}))

	if s.InitialBudget.Cents > 0 {
		fmt.Printf("Budget: %s\n", s.InitialBudget)
		fmt.Println(renderRemaining(s.Remaining))
	}
	return nil
}
