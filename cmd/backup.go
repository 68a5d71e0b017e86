package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sadopc/voltlog/internal/export"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [path]",
	Short: "Write a full JSON backup",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Restore from a JSON backup",
	Long:  "Restore collections from a backup file. Only collections present in the file are replaced; a malformed file changes nothing.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(_ *cobra.Command, args []string) error {
	s, exportDir, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		dateStr := time.Now().Format("2006-01-02")
		path = filepath.Join(exportDir, fmt.Sprintf("voltlog-backup-%s.json", dateStr))
	}

	if err := export.WriteBackup(path, s.Snapshot()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", path)
	return nil
}

func runRestore(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := export.ReadBackup(args[0])
	if err != nil {
		return err
	}
	s.Restore(snap)

	fmt.Printf("  Restored %d charges, %d bills, %d expenses\n",
		len(snap.Charges), len(snap.Bills), len(snap.Expenses))
	return nil
}
