package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gastos/internal/services"
)

var (
	flagAddAmount    string
	flagAddDate      string
	flagAddRecurring bool
)

var addCmd = &cobra.Command{
	Use:   "add <description...>",
	Short: "Add an expense",
	Example: `
gastos add Mercado --amount 150,50 -c Comida
gastos add Aluguel -a 1200 -d 2024-02-01 --recurring
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount, dot or comma decimals (required)")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Date (defaults to today)")
	addCmd.Flags().BoolVarP(&flagAddRecurring, "recurring", "r", false, "Repeat this expense monthly")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	a.materialize(ctx)

	expense, alert, err := a.ledger.AddExpense(ctx, services.AddInput{
		Description: strings.Join(args, " "),
		Amount:      flagAddAmount,
		Date:        flagAddDate,
		Category:    flagCategory,
		Recurring:   flagAddRecurring,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s  %s  %s (%s)\n",
		expense.Date.ISO(), expense.Description, expense.Amount, expense.Category)
	if flagAddRecurring {
		fmt.Println("Registered as a monthly recurring expense.")
	}
	if alert != nil {
		fmt.Println(renderBudgetAlert(alert))
	}
	return nil
}
