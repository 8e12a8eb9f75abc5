// Package cli is the command-line surface of the expense tracker. Every
// command opens the application (config, logging, store backend), runs
// one operation, and persists the undo history before exiting.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagMonth    int
	flagYear     int
	flagCategory string
	flagSearch   string
)

var rootCmd = &cobra.Command{
	Use:   "gastos",
	Short: "Personal expense tracker",
	Long:  "Track expenses, category budgets, and monthly recurring charges in a single local ledger.",
	RunE:  runList,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", 0, "Filter to month (1-12, requires --year)")
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Filter to year")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", "", "Category: filters listings, sets the category on add")
	rootCmd.PersistentFlags().StringVarP(&flagSearch, "search", "s", "", "Filter by description substring")
}
