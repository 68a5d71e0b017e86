package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/voltlog/internal/stats"
	"github.com/sadopc/voltlog/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	totals   stats.Totals
	recent   []store.ChargeSession
	settings store.Settings
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	totals   stats.Totals
	recent   []store.ChargeSession
	settings store.Settings
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		charges := d.store.Charges()
		recent := charges
		if len(recent) > 3 {
			recent = recent[:3]
		}
		return dashboardDataMsg{
			totals:   stats.ComputeTotals(charges),
			recent:   recent,
			settings: d.store.Settings(),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.totals = msg.totals
		d.recent = msg.recent
		d.settings = msg.settings
	}
	return d, nil
}

// renderTile draws one stat cell. Shared by the dashboard and the
// expenses overview.
func renderTile(value, unit, label string, highlight bool) string {
	style := tileStyle
	if highlight {
		style = tileHighlightStyle
	}
	v := tileValueStyle.Render(value)
	if unit != "" {
		v += " " + mutedStyle.Render(unit)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, v, mutedStyle.Render(label)))
}

func (d dashboardModel) view() string {
	w := d.width - 4
	cur := d.settings.Currency
	unit := d.settings.DistanceUnit

	title := titleStyle.Render(d.settings.CarName)

	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		renderTile(cur+formatNum(d.totals.TotalSpent), "", "Total Spent", true),
		renderTile(formatNum(d.totals.TotalKms), unit, "Distance", false),
		renderTile(formatFixed(d.totals.Efficiency), cur+"/"+unit, "Efficiency", false),
		renderTile(formatNum(d.totals.TotalUnits), "kWh", "Total Energy", false),
	)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, tiles)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Recent sessions"))

	if len(d.recent) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing logged yet. Press 2 to add a charge session."))
	}
	for _, session := range d.recent {
		typeMark := successStyle.Render("⌂")
		if session.Type == "Public" {
			typeMark = warningStyle.Render("⚡")
		}
		rows = append(rows, fmt.Sprintf("  %s %-14s %8s kWh %10s %10s",
			typeMark,
			formatDate(session.Timestamp),
			formatNum(session.Units),
			cur+formatNum(session.Cost),
			formatNum(session.DrivenKm)+" "+unit,
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
