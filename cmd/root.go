package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/voltlog/internal/config"
	"github.com/sadopc/voltlog/internal/store"
	"github.com/sadopc/voltlog/internal/tui"
	"github.com/spf13/cobra"
)

var flagData string

var rootCmd = &cobra.Command{
	Use:   "voltlog",
	Short: "EV charging and running-cost tracker",
	Long:  "Track charge sessions, meter bills, and expenses for your EV, with derived cost and efficiency stats.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Path to the data file (overrides config)")
}

// openStore is the shared store opening path used by all commands.
func openStore() (*store.Store, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	if flagData != "" {
		cfg.DataPath = flagData
	}

	dataPath, err := cfg.ResolveDataPath()
	if err != nil {
		return nil, "", err
	}
	exportDir, err := cfg.ResolveExportDir()
	if err != nil {
		return nil, "", err
	}

	s, err := store.New(dataPath)
	if err != nil {
		return nil, "", fmt.Errorf("opening data file: %w", err)
	}
	return s, exportDir, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, exportDir, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s, exportDir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
