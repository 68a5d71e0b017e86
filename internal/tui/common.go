package tui

import (
	"strconv"
	"strings"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCharging
	viewMeter
	viewExpenses
	viewStats
	viewSettings
)

var viewNames = []string{"Dashboard", "Charging", "Meter", "Expenses", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// parseNum coerces form input to a number; anything unparseable is 0.
func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDateTime builds an epoch-milliseconds timestamp from a date and a
// clock string, falling back to now.
func parseDateTime(date, clock string) int64 {
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}

func formatDate(ts int64) string {
	return time.UnixMilli(ts).Local().Format("02 Jan 2006")
}

// formatNum renders a value with up to two decimals, trailing zeros
// trimmed.
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}

func formatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func numField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
