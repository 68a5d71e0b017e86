package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/voltlog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Helper functions
// ============================================================

func TestParseNum(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"42.5", 42.5},
		{" 12 ", 12},
		{"", 0},
		{"garbage", 0},
		{"-3", -3},
	}
	for _, tt := range tests {
		got := parseNum(tt.in)
		if got != tt.want {
			t.Errorf("parseNum(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	ts := parseDateTime("2024-03-10", "14:30")
	got := time.UnixMilli(ts).Local()
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 10 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("unexpected time: %v", got)
	}
}

func TestParseDateTimeEmptyClock(t *testing.T) {
	ts := parseDateTime("2024-03-10", "")
	got := time.UnixMilli(ts).Local()
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("empty clock should mean midnight, got %v", got)
	}
}

func TestParseDateTimeInvalidFallsBackToNow(t *testing.T) {
	before := time.Now().UnixMilli()
	ts := parseDateTime("not a date", "99:99")
	after := time.Now().UnixMilli()
	if ts < before || ts > after {
		t.Fatalf("invalid input should fall back to now, got %d", ts)
	}
}

func TestFormatNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{42.5, "42.5"},
		{42.128, "42.13"},
		{1200, "1200"},
	}
	for _, tt := range tests {
		got := formatNum(tt.in)
		if got != tt.want {
			t.Errorf("formatNum(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumField(t *testing.T) {
	if numField(0) != "" {
		t.Fatal("zero should be an empty field")
	}
	if numField(40.5) != "40.5" {
		t.Fatalf("numField(40.5) = %q", numField(40.5))
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 6 {
		t.Fatalf("expected 6 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Charging", "Meter", "Expenses", "Stats", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewCharging != 1 || viewMeter != 2 ||
		viewExpenses != 3 || viewStats != 4 || viewSettings != 5 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Charging model
// ============================================================

func TestChargingPreviousOdometer(t *testing.T) {
	s := newTestStore(t)
	s.AddCharge(store.ChargeSession{Odometer: 1000})
	s.AddCharge(store.ChargeSession{Odometer: 1200})

	c := newChargingModel(s)
	c.charges = s.Charges()

	head := c.charges[0]
	if got := c.previousOdometer(head.ID); got != 1000 {
		t.Fatalf("expected 1000, got %v", got)
	}
	oldest := c.charges[1]
	if got := c.previousOdometer(oldest.ID); got != 0 {
		t.Fatalf("oldest session has no predecessor, got %v", got)
	}
	if got := c.previousOdometer("nope"); got != 0 {
		t.Fatalf("unknown id should yield 0, got %v", got)
	}
}

func TestChargingViewEmpty(t *testing.T) {
	s := newTestStore(t)
	c := newChargingModel(s)
	c.setSize(100, 30)

	out := c.view()
	if !strings.Contains(out, "No charge sessions") {
		t.Fatal("empty view should show the hint")
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	s.AddCharge(store.ChargeSession{Timestamp: 1, Odometer: 1000, Cost: 100, Units: 10})
	s.AddCharge(store.ChargeSession{Timestamp: 2, Odometer: 1200, Cost: 150, Units: 15})

	d := newDashboardModel(s)
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("unexpected msg type %T", msg)
	}
	if data.totals.TotalSpent != 250 {
		t.Fatalf("expected spent 250, got %v", data.totals.TotalSpent)
	}
	if len(data.recent) != 2 {
		t.Fatalf("expected 2 recent sessions, got %d", len(data.recent))
	}
}

func TestDashboardRecentCappedAtThree(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		s.AddCharge(store.ChargeSession{Cost: float64(i)})
	}

	d := newDashboardModel(s)
	data := d.loadData()().(dashboardDataMsg)
	if len(data.recent) != 3 {
		t.Fatalf("expected 3 recent sessions, got %d", len(data.recent))
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	app.width = 120
	app.height = 40

	views := []viewState{viewDashboard, viewCharging, viewMeter, viewExpenses, viewStats, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	app.width = 160
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	app.width = 120
	app.height = 40
	app.exportPicking = true

	picker := app.renderExportPicker()
	for _, f := range exportFormats {
		if !strings.Contains(picker, f) {
			t.Fatalf("picker missing format %q", f)
		}
	}
}

func TestAppExportBackup(t *testing.T) {
	s := newTestStore(t)
	s.AddCharge(store.ChargeSession{Cost: 100})
	dir := t.TempDir()
	app := NewApp(s, dir)

	msg := app.doExport(3)()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %T: %v", msg, msg)
	}
	if !strings.Contains(done.path, "voltlog-backup-") {
		t.Fatalf("unexpected backup path %q", done.path)
	}
}

func TestAppExportEmptyCollectionFails(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())

	msg := app.doExport(0)()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	if !status.isError {
		t.Fatal("exporting an empty collection should report an error")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"tile", func() string { return tileStyle.Render("test") }},
		{"tileHighlight", func() string { return tileHighlightStyle.Render("test") }},
		{"tileValue", func() string { return tileValueStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
