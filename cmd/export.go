package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sadopc/voltlog/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:       "export [charges|bills|expenses]",
	Short:     "Write records as CSV",
	Long:      "Write one collection as CSV, or all three when no argument is given.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"charges", "bills", "expenses"},
	RunE:      runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	s, exportDir, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	which := ""
	if len(args) > 0 {
		which = args[0]
	}

	dateStr := time.Now().Format("2006-01-02")
	writers := map[string]func(string) error{
		"charges":  func(p string) error { return export.ToCSV(s.Charges(), p) },
		"bills":    func(p string) error { return export.ToCSV(s.Bills(), p) },
		"expenses": func(p string) error { return export.ToCSV(s.Expenses(), p) },
	}

	for _, name := range []string{"charges", "bills", "expenses"} {
		if which != "" && which != name {
			continue
		}
		path := filepath.Join(exportDir, fmt.Sprintf("voltlog-%s-%s.csv", name, dateStr))
		if err := writers[name](path); err != nil {
			if which == "" {
				// Exporting everything: an empty collection is not fatal
				fmt.Printf("  Skipped %s: %v\n", name, err)
				continue
			}
			return err
		}
		fmt.Printf("  Wrote %s\n", path)
	}

	return nil
}
