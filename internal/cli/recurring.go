package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Inspect and run monthly recurring expenses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var recurringRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Materialize every due occurrence up to today",
	RunE:  runRecurringRun,
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered recurring rules",
	RunE:  runRecurringList,
}

func init() {
	recurringCmd.AddCommand(recurringRunCmd)
	recurringCmd.AddCommand(recurringListCmd)
	rootCmd.AddCommand(recurringCmd)
}

func runRecurringRun(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.recurring.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d recurring expense(s).\n", n)
	return nil
}

func runRecurringList(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.ledger.Document(context.Background())
	if err != nil {
		return err
	}
	if len(doc.RecurringRules) == 0 {
		fmt.Println("No recurring rules.")
		return nil
	}

	rows := make([][]string, 0, len(doc.RecurringRules))
	for _, r := range doc.RecurringRules {
		rows = append(rows, []string{
			r.Description,
			r.Category,
			strconv.Itoa(r.DayOfMonth),
			r.Amount.String(),
			r.LastGenerated.ISO(),
		})
	}
	fmt.Print(renderTable(table{
		Headers: []string{"Descricao", "Categoria", "Dia", "Valor", "Ultima"},
		Rows:    rows,
	}))
	return nil
}
