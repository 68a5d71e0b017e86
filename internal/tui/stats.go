package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/voltlog/internal/stats"
	"github.com/sadopc/voltlog/internal/store"
)

type statsMode int

const (
	statsGrid statsMode = iota
	statsTrend
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	mode     statsMode
	sections []stats.Section
	points   []stats.Point
	settings store.Settings

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct {
	sections []stats.Section
	points   []stats.Point
	settings store.Settings
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		charges := s.store.Charges()
		settings := s.store.Settings()
		return statsDataMsg{
			sections: stats.RatioSections(charges, settings.Currency, settings.DistanceUnit),
			points:   stats.ChartSeries(charges),
			settings: settings,
		}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.sections = msg.sections
		s.points = msg.points
		s.settings = msg.settings
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Tab) {
			if s.mode == statsGrid {
				s.mode = statsTrend
			} else {
				s.mode = statsGrid
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	points := s.points
	maxBars := chartWidth / 8
	if maxBars > 0 && len(points) > maxBars {
		points = points[len(points)-maxBars:]
	}

	costStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	var bars []barchart.BarData
	for _, p := range points {
		bars = append(bars, barchart.BarData{
			Label: p.Date.Format("02/01"),
			Values: []barchart.BarValue{
				{Name: "cost", Value: p.Cost, Style: costStyle},
			},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	gridTab := inactiveTabStyle.Render("Ratios")
	trendTab := inactiveTabStyle.Render("Trend")
	if s.mode == statsGrid {
		gridTab = activeTabStyle.Render("Ratios")
	} else {
		trendTab = activeTabStyle.Render("Trend")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", gridTab, trendTab,
	)

	var body string
	if s.mode == statsTrend {
		body = s.renderTrend()
	} else {
		body = s.renderGrid()
	}

	nav := mutedStyle.Render("  tab: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (s statsModel) renderGrid() string {
	var blocks []string
	for _, section := range s.sections {
		tiles := make([]string, 0, len(section.Tiles))
		for _, t := range section.Tiles {
			tiles = append(tiles, renderTile(formatFixed(t.Value), t.Unit, t.Label, t.Highlight))
		}
		blocks = append(blocks,
			accentStyle.Render(section.Title),
			lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
		)
	}
	if len(blocks) == 0 {
		return mutedStyle.Render("  No charge data yet")
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (s statsModel) renderTrend() string {
	if len(s.points) == 0 {
		return mutedStyle.Render("  No charge data yet")
	}

	legend := mutedStyle.Render(fmt.Sprintf("  Cost per session (%s)", s.settings.Currency))

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %12s %12s",
		"Date", "Cost", "Driven", "km/kWh", s.settings.Currency+"/km"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 58)))

	points := s.points
	if len(points) > 10 {
		points = points[len(points)-10:]
	}
	for _, p := range points {
		rows = append(rows, fmt.Sprintf("  %-12s %10s %10s %12s %12s",
			p.Date.Format("02 Jan 06"),
			formatNum(p.Cost),
			formatNum(p.DrivenKm),
			formatFixed(p.Efficiency),
			formatFixed(p.CostEfficiency),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.chart.View(), legend, "", strings.Join(rows, "\n"),
	)
}
