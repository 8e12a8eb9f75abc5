package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the most recently deleted expense",
	RunE:  runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	restored, ok, err := a.ledger.Undo(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Nothing to undo.")
		return nil
	}

	fmt.Printf("Restored %s  %s  %s (%s)\n",
		restored.Date.ISO(), restored.Description, restored.Amount, restored.Category)
	return nil
}
