package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the overall budget and category ceilings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the overall budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

var budgetCategoryCmd = &cobra.Command{
	Use:   "category <name> <amount>",
	Short: "Set a category's monthly ceiling",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetCategory,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetCategoryCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ledger.SetInitialBudget(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Overall budget set to %s\n", args[0])
	return nil
}

func runBudgetCategory(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ledger.SetCategoryBudget(context.Background(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Monthly ceiling for %s set to %s\n", args[0], args[1])
	return nil
}
