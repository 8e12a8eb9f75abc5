package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gastos/internal/csvio"
	"gastos/internal/query"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import expenses from CSV or JSON files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var importCSVCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Append expenses from a CSV file",
	Long: "Append expenses from a CSV file. Columns may come in any\n" +
		"order with Portuguese or English header names; files without a\n" +
		"header row are read positionally.",
	Args: cobra.ExactArgs(1),
	RunE: runImportCSV,
}

var importJSONCmd = &cobra.Command{
	Use:   "json <file>",
	Short: "Replace the whole ledger with a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportJSON,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the filtered expenses to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	importCmd.AddCommand(importCSVCmd)
	importCmd.AddCommand(importJSONCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImportCSV(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	res, err := csvio.Import(f, time.Now())
	if err != nil {
		return err
	}
	for _, p := range res.Problems {
		fmt.Fprintf(os.Stderr, "warning: %v\n", p)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.ledger.AppendExpenses(context.Background(), res.Expenses)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d expense(s) from %s\n", n, args[0])
	return nil
}

func runImportJSON(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ledger.ReplaceDocument(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Ledger replaced with the contents of %s\n", args[0])
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
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

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	view := query.View(doc, activeFilter())
	if err := csvio.Export(f, view); err != nil {
		return err
	}
	fmt.Printf("Exported %d expense(s) to %s\n", len(view), args[0])
	return nil
}
