package cmd

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/sadopc/voltlog/internal/stats"
	"github.com/spf13/cobra"
)

var flagChart bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print totals and the ratio grid",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagChart, "chart", false, "Plot the cost trend")
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	charges := s.Charges()
	settings := s.Settings()
	cur := settings.Currency
	unit := settings.DistanceUnit

	totals := stats.ComputeTotals(charges)

	fmt.Println()
	fmt.Printf("  %s\n", settings.CarName)
	fmt.Println()
	fmt.Printf("  %-18s %s%s\n", "Total spent", cur, formatAmount(totals.TotalSpent))
	fmt.Printf("  %-18s %s kWh\n", "Total energy", formatAmount(totals.TotalUnits))
	fmt.Printf("  %-18s %s %s\n", "Odometer", formatAmount(totals.TotalKms), unit)
	fmt.Printf("  %-18s %s%.2f / %s\n", "Efficiency", cur, totals.Efficiency, unit)

	if flagChart {
		fmt.Println()
		printCostTrend(stats.ChartSeries(charges))
		return nil
	}

	for _, section := range stats.RatioSections(charges, cur, unit) {
		fmt.Println()
		fmt.Printf("  %s\n", section.Title)
		for _, tile := range section.Tiles {
			mark := " "
			if tile.Highlight {
				mark = "*"
			}
			fmt.Printf("  %s %-20s %10.2f  %s\n", mark, tile.Label, tile.Value, tile.Unit)
		}
	}
	fmt.Println()

	return nil
}

func printCostTrend(points []stats.Point) {
	if len(points) == 0 {
		fmt.Println("  No charge data yet.")
		return
	}

	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = p.Cost
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("Cost per session, oldest to newest"),
	))
	fmt.Println()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
