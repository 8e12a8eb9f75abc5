package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gastos/internal/services"
)

var (
	flagEditDescription string
	flagEditAmount      string
	flagEditDate        string
)

var editCmd = &cobra.Command{
	Use:   "edit <position>",
	Short: "Edit the expense at a list position",
	Long: "Change the description, amount, or date of the expense at\n" +
		"<position> in the current listing. Unset flags keep the current\n" +
		"value. To move an expense to another category, delete and re-add it.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditDescription, "description", "", "New description")
	editCmd.Flags().StringVarP(&flagEditAmount, "amount", "a", "", "New amount")
	editCmd.Flags().StringVarP(&flagEditDate, "date", "d", "", "New date")
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil || pos < 1 {
		return fmt.Errorf("position must be a number from the listing, got %q", args[0])
	}
	if flagEditDescription == "" && flagEditAmount == "" && flagEditDate == "" {
		return fmt.Errorf("nothing to change: pass --description, --amount, or --date")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	a.materialize(ctx)

	updated, err := a.ledger.EditExpense(ctx, activeFilter(), pos-1, services.EditInput{
		Description: flagEditDescription,
		Amount:      flagEditAmount,
		Date:        flagEditDate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s  %s  %s (%s)\n",
		updated.Date.ISO(), updated.Description, updated.Amount, updated.Category)
	return nil
}
