package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a timestamped snapshot of the ledger",
	RunE:  runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	path, err := a.store.Backup(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", path)
	return nil
}
