// Package stats derives dashboard metrics from record snapshots. Every
// function is a pure fold over its input: no shared state, safe to
// recompute on every read.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/voltlog/internal/store"
)

// Totals are the global dashboard numbers.
type Totals struct {
	TotalSpent float64
	TotalUnits float64
	TotalKms   float64 // latest odometer reading, not a sum of deltas
	Efficiency float64 // currency per distance unit
}

// ComputeTotals folds the charge sessions into the dashboard totals.
// TotalKms is the odometer of the latest-by-timestamp session; on equal
// timestamps the last one encountered wins, so the result is
// deterministic for any input order. Efficiency is 0 when TotalKms is 0.
func ComputeTotals(charges []store.ChargeSession) Totals {
	var t Totals
	var latest int64
	seen := false
	for _, c := range charges {
		t.TotalSpent += c.Cost
		t.TotalUnits += c.Units
		if !seen || c.Timestamp >= latest {
			latest = c.Timestamp
			t.TotalKms = c.Odometer
			seen = true
		}
	}
	if t.TotalKms != 0 {
		t.Efficiency = t.TotalSpent / t.TotalKms
	}
	return t
}

// Tile is one cell of the ratio grid. Value carries full precision; the
// views round for display.
type Tile struct {
	Value     float64
	Unit      string
	Label     string
	Highlight bool
}

// Section is one semantic group of the ratio grid.
type Section struct {
	Title string
	Tiles []Tile
}

// RatioSections builds the twelve-cell ratio grid from four running sums
// (distance, battery percent, energy, cost). Each sum is floored to 1
// before use as a divisor, so an empty data set yields near-zero ratios
// instead of errors.
func RatioSections(charges []store.ChargeSession, currency, distanceUnit string) []Section {
	var km, pct, kwh, cost float64
	for _, c := range charges {
		km += c.DrivenKm
		pct += c.BatteryPct - c.StartPct
		kwh += c.Units
		cost += c.Cost
	}
	km = math.Max(km, 1)
	pct = math.Max(pct, 1)
	kwh = math.Max(kwh, 1)
	cost = math.Max(cost, 1)

	cur := currency
	unit := strings.ToUpper(distanceUnit)

	return []Section{
		{
			Title: "Cost Analysis",
			Tiles: []Tile{
				{Value: cost / km, Unit: cur + " / " + unit, Label: "Cost per " + unit, Highlight: true},
				{Value: cost / pct, Unit: cur + " / %", Label: "Cost per %"},
				{Value: cost / kwh, Unit: cur + " / kWh", Label: "Avg Unit Cost"},
			},
		},
		{
			Title: "Range Efficiency",
			Tiles: []Tile{
				{Value: km / pct, Unit: unit + " / %", Label: "Range per %", Highlight: true},
				{Value: km / kwh, Unit: unit + " / kWh", Label: "Range per Unit"},
				{Value: km / cost, Unit: unit + " / " + cur, Label: unit + " per " + cur},
			},
		},
		{
			Title: "Energy Spec",
			Tiles: []Tile{
				{Value: kwh / km, Unit: "kWh / " + unit, Label: "Energy per " + unit},
				{Value: kwh / pct, Unit: "kWh / %", Label: "Bat. Capacity Est"},
				{Value: kwh / cost, Unit: "kWh / " + cur, Label: "Units per " + cur},
			},
		},
		{
			Title: "Battery Usage",
			Tiles: []Tile{
				{Value: pct / km, Unit: "% / " + unit, Label: "Drop per " + unit},
				{Value: pct / kwh, Unit: "% / kWh", Label: "% Drop per Unit"},
				{Value: pct / cost, Unit: "% / " + cur, Label: "% Drop per " + cur},
			},
		},
	}
}

// Point is one session on the trend charts.
type Point struct {
	Date           time.Time
	Cost           float64
	DrivenKm       float64
	Efficiency     float64 // distance per kWh, 0 when either side is 0
	CostEfficiency float64 // cost per distance, 0 when drivenKm is 0
}

// ChartSeries returns one point per session, stable-sorted ascending by
// timestamp. The input slice is not modified and the output length always
// equals the input length.
func ChartSeries(charges []store.ChargeSession) []Point {
	sorted := make([]store.ChargeSession, len(charges))
	copy(sorted, charges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	points := make([]Point, 0, len(sorted))
	for _, c := range sorted {
		p := Point{
			Date:     time.UnixMilli(c.Timestamp),
			Cost:     c.Cost,
			DrivenKm: c.DrivenKm,
		}
		if c.DrivenKm > 0 && c.Units > 0 {
			p.Efficiency = c.DrivenKm / c.Units
		}
		if c.DrivenKm > 0 {
			p.CostEfficiency = c.Cost / c.DrivenKm
		}
		points = append(points, p)
	}
	return points
}

// CategoryTotal is the summed amount for one expense category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// ExpenseStats summarizes the expense records.
type ExpenseStats struct {
	Total       float64
	ByCategory  []CategoryTotal // first-seen category order
	TopCategory string          // first maximal category in first-seen order
}

// ComputeExpenseStats folds the expenses into a total and a per-category
// breakdown. The per-category amounts sum exactly to Total.
func ComputeExpenseStats(expenses []store.Expense) ExpenseStats {
	var st ExpenseStats
	index := make(map[string]int)
	for _, e := range expenses {
		st.Total += e.Amount
		i, ok := index[e.Category]
		if !ok {
			i = len(st.ByCategory)
			index[e.Category] = i
			st.ByCategory = append(st.ByCategory, CategoryTotal{Category: e.Category})
		}
		st.ByCategory[i].Amount += e.Amount
	}

	best := math.Inf(-1)
	for _, ct := range st.ByCategory {
		if ct.Amount > best {
			best = ct.Amount
			st.TopCategory = ct.Category
		}
	}
	return st
}
