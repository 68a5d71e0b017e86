package stats

import (
	"math"
	"testing"

	"github.com/sadopc/voltlog/internal/store"
)

// ============================================================
// Totals
// ============================================================

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil)
	if got.TotalSpent != 0 || got.TotalUnits != 0 || got.TotalKms != 0 || got.Efficiency != 0 {
		t.Fatalf("empty input should yield all zeros, got %+v", got)
	}
}

func TestComputeTotalsSums(t *testing.T) {
	charges := []store.ChargeSession{
		{Timestamp: 2, Cost: 150, Units: 20, Odometer: 1200},
		{Timestamp: 1, Cost: 100, Units: 15, Odometer: 1000},
	}
	got := ComputeTotals(charges)
	if got.TotalSpent != 250 {
		t.Fatalf("expected spent 250, got %v", got.TotalSpent)
	}
	if got.TotalUnits != 35 {
		t.Fatalf("expected units 35, got %v", got.TotalUnits)
	}
	if got.TotalKms != 1200 {
		t.Fatalf("expected kms from latest session, got %v", got.TotalKms)
	}
	if math.Abs(got.Efficiency-250.0/1200.0) > 1e-12 {
		t.Fatalf("unexpected efficiency %v", got.Efficiency)
	}
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	a := []store.ChargeSession{
		{Timestamp: 1, Odometer: 1000},
		{Timestamp: 2, Odometer: 1200},
	}
	b := []store.ChargeSession{a[1], a[0]}
	if ComputeTotals(a).TotalKms != ComputeTotals(b).TotalKms {
		t.Fatal("TotalKms should not depend on input order")
	}
}

func TestComputeTotalsTimestampTie(t *testing.T) {
	charges := []store.ChargeSession{
		{Timestamp: 5, Odometer: 100},
		{Timestamp: 5, Odometer: 200},
	}
	got := ComputeTotals(charges)
	if got.TotalKms != 200 {
		t.Fatalf("on equal timestamps the last encountered wins, got %v", got.TotalKms)
	}
}

func TestComputeTotalsEfficiencyFinite(t *testing.T) {
	inputs := [][]store.ChargeSession{
		nil,
		{{Cost: 100, Odometer: 0}},
		{{Cost: 0, Odometer: 0}},
		{{Cost: 100, Timestamp: 1, Odometer: 500}},
	}
	for i, charges := range inputs {
		got := ComputeTotals(charges)
		if math.IsNaN(got.Efficiency) || math.IsInf(got.Efficiency, 0) {
			t.Fatalf("case %d: efficiency is not finite: %v", i, got.Efficiency)
		}
	}
}

// ============================================================
// Ratio grid
// ============================================================

func TestRatioSectionsShape(t *testing.T) {
	sections := RatioSections(nil, "₹", "km")
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	for _, sec := range sections {
		if len(sec.Tiles) != 3 {
			t.Fatalf("section %q should have 3 tiles, got %d", sec.Title, len(sec.Tiles))
		}
	}
}

func TestRatioSectionsEmptyInputFloorsDivisors(t *testing.T) {
	// With no data all four sums floor to 1, so every ratio is 1
	for _, sec := range RatioSections(nil, "₹", "km") {
		for _, tile := range sec.Tiles {
			if tile.Value != 1 {
				t.Fatalf("%s / %s: expected 1, got %v", sec.Title, tile.Label, tile.Value)
			}
		}
	}
}

func TestRatioSectionsValues(t *testing.T) {
	charges := []store.ChargeSession{
		{DrivenKm: 200, StartPct: 20, BatteryPct: 80, Units: 25, Cost: 250},
		{DrivenKm: 100, StartPct: 30, BatteryPct: 70, Units: 15, Cost: 150},
	}
	sections := RatioSections(charges, "₹", "km")

	// km=300 pct=100 kwh=40 cost=400
	costPerKm := sections[0].Tiles[0]
	if math.Abs(costPerKm.Value-400.0/300.0) > 1e-12 {
		t.Fatalf("cost per km: got %v", costPerKm.Value)
	}
	if !costPerKm.Highlight {
		t.Fatal("cost per km should be highlighted")
	}
	rangePerPct := sections[1].Tiles[0]
	if math.Abs(rangePerPct.Value-3.0) > 1e-12 {
		t.Fatalf("range per %%: got %v", rangePerPct.Value)
	}
	capacityEst := sections[2].Tiles[1]
	if math.Abs(capacityEst.Value-0.4) > 1e-12 {
		t.Fatalf("capacity estimate: got %v", capacityEst.Value)
	}
}

func TestRatioSectionsUnitLabels(t *testing.T) {
	sections := RatioSections(nil, "$", "mi")
	if sections[0].Tiles[0].Unit != "$ / MI" {
		t.Fatalf("unexpected unit %q", sections[0].Tiles[0].Unit)
	}
	if sections[0].Tiles[0].Label != "Cost per MI" {
		t.Fatalf("unexpected label %q", sections[0].Tiles[0].Label)
	}
}

// ============================================================
// Chart series
// ============================================================

func TestChartSeriesLengthAndOrder(t *testing.T) {
	charges := []store.ChargeSession{
		{Timestamp: 300},
		{Timestamp: 100},
		{Timestamp: 200},
	}
	points := ChartSeries(charges)
	if len(points) != len(charges) {
		t.Fatalf("expected %d points, got %d", len(charges), len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Date.Before(points[i-1].Date) {
			t.Fatal("points should be ascending by date")
		}
	}
}

func TestChartSeriesDoesNotMutateInput(t *testing.T) {
	charges := []store.ChargeSession{
		{Timestamp: 300},
		{Timestamp: 100},
	}
	ChartSeries(charges)
	if charges[0].Timestamp != 300 || charges[1].Timestamp != 100 {
		t.Fatal("input slice was reordered")
	}
}

func TestChartSeriesEfficiencyGuards(t *testing.T) {
	charges := []store.ChargeSession{
		{Timestamp: 1, DrivenKm: 0, Units: 10, Cost: 50},
		{Timestamp: 2, DrivenKm: 100, Units: 0, Cost: 50},
		{Timestamp: 3, DrivenKm: 100, Units: 20, Cost: 50},
	}
	points := ChartSeries(charges)

	if points[0].Efficiency != 0 || points[0].CostEfficiency != 0 {
		t.Fatal("zero drivenKm should yield zero efficiencies")
	}
	if points[1].Efficiency != 0 {
		t.Fatal("zero units should yield zero efficiency")
	}
	if points[1].CostEfficiency != 0.5 {
		t.Fatalf("expected cost efficiency 0.5, got %v", points[1].CostEfficiency)
	}
	if points[2].Efficiency != 5 {
		t.Fatalf("expected efficiency 5, got %v", points[2].Efficiency)
	}
}

func TestChartSeriesEmpty(t *testing.T) {
	if len(ChartSeries(nil)) != 0 {
		t.Fatal("empty input should yield no points")
	}
}

// ============================================================
// Expense stats
// ============================================================

func TestComputeExpenseStats(t *testing.T) {
	expenses := []store.Expense{
		{Category: "Service", Amount: 800},
		{Category: "Tyres", Amount: 1500},
	}
	got := ComputeExpenseStats(expenses)

	if got.Total != 2300 {
		t.Fatalf("expected total 2300, got %v", got.Total)
	}
	if got.TopCategory != "Tyres" {
		t.Fatalf("expected top category Tyres, got %q", got.TopCategory)
	}
}

func TestComputeExpenseStatsBreakdownSumsToTotal(t *testing.T) {
	expenses := []store.Expense{
		{Category: "Service", Amount: 800},
		{Category: "Tyres", Amount: 1500},
		{Category: "Service", Amount: 200},
	}
	got := ComputeExpenseStats(expenses)

	var sum float64
	for _, ct := range got.ByCategory {
		sum += ct.Amount
	}
	if sum != got.Total {
		t.Fatalf("breakdown sums to %v, total is %v", sum, got.Total)
	}
}

func TestComputeExpenseStatsFirstSeenOrder(t *testing.T) {
	expenses := []store.Expense{
		{Category: "Toll", Amount: 10},
		{Category: "Wash", Amount: 20},
		{Category: "Toll", Amount: 5},
	}
	got := ComputeExpenseStats(expenses)
	if len(got.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.ByCategory))
	}
	if got.ByCategory[0].Category != "Toll" || got.ByCategory[1].Category != "Wash" {
		t.Fatalf("categories not in first-seen order: %+v", got.ByCategory)
	}
	if got.ByCategory[0].Amount != 15 {
		t.Fatalf("expected Toll 15, got %v", got.ByCategory[0].Amount)
	}
}

func TestComputeExpenseStatsTieGoesToFirstSeen(t *testing.T) {
	expenses := []store.Expense{
		{Category: "Wash", Amount: 100},
		{Category: "Toll", Amount: 100},
	}
	got := ComputeExpenseStats(expenses)
	if got.TopCategory != "Wash" {
		t.Fatalf("tie should go to the first-seen category, got %q", got.TopCategory)
	}
}

func TestComputeExpenseStatsEmpty(t *testing.T) {
	got := ComputeExpenseStats(nil)
	if got.Total != 0 || got.TopCategory != "" || len(got.ByCategory) != 0 {
		t.Fatalf("empty input should yield zero stats, got %+v", got)
	}
}
