package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <position>",
	Short: "Delete the expense at a list position",
	Long: "Delete the expense shown at <position> in the current listing.\n" +
		"Positions are 1-based and respect the active filter flags, so\n" +
		"`gastos list -m 2 -y 2024` and `gastos delete 3 -m 2 -y 2024`\n" +
		"refer to the same entry.",
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil || pos < 1 {
		return fmt.Errorf("position must be a number from the listing, got %q", args[0])
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	a.materialize(ctx)

	removed, err := a.ledger.DeleteExpense(ctx, activeFilter(), pos-1)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %s  %s  %s (undo with `gastos undo`)\n",
		removed.Date.ISO(), removed.Description, removed.Amount)
	return nil
}
