package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gastos/internal/query"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
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

	view := query.View(doc, activeFilter())
	if len(view) == 0 {
		fmt.Println("No expenses match.")
		return nil
	}

	fmt.Print(renderTable(expenseRows(view)))
	return nil
}
