package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/voltlog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   store.Settings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	currency     *string
	distanceUnit *string
	carName      *string
	batterySize  *string
	homeRate     *string
	theme        *string
}

func newSettingsModel(s *store.Store) settingsModel {
	cur, du, cn, bs, hr, th := "", "", "", "", "", ""
	return settingsModel{
		store:        s,
		currency:     &cur,
		distanceUnit: &du,
		carName:      &cn,
		batterySize:  &bs,
		homeRate:     &hr,
		theme:        &th,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{settings: s.store.Settings()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.currency = s.settings.Currency
	*s.distanceUnit = s.settings.DistanceUnit
	*s.carName = s.settings.CarName
	*s.batterySize = numField(s.settings.BatterySize)
	*s.homeRate = numField(s.settings.HomeRate)
	*s.theme = s.settings.Theme

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Car name").Value(s.carName),
			huh.NewInput().Title("Battery size (kWh)").Value(s.batterySize),
			huh.NewInput().Title("Home rate (per kWh)").Value(s.homeRate),
		).Title("Vehicle"),
		huh.NewGroup(
			huh.NewInput().Title("Currency symbol").Value(s.currency),
			huh.NewSelect[string]().Title("Distance unit").
				Options(
					huh.NewOption("Kilometres", "km"),
					huh.NewOption("Miles", "mi"),
				).Value(s.distanceUnit),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).Value(s.theme),
		).Title("Display"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, tea.Batch(s.refresh(), func() tea.Msg {
			return statusMsg{text: "Settings saved"}
		})
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	batterySize := parseNum(*s.batterySize)
	homeRate := parseNum(*s.homeRate)
	s.store.UpdateSettings(store.SettingsPatch{
		Currency:     s.currency,
		DistanceUnit: s.distanceUnit,
		CarName:      s.carName,
		BatterySize:  &batterySize,
		HomeRate:     &homeRate,
		Theme:        s.theme,
	})
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings  x: export/backup")

	row := func(label, value string) string {
		l := lipgloss.NewStyle().Width(18).Render(label)
		return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
	}

	rows := []string{
		title,
		"",
		row("Car name", s.settings.CarName),
		row("Battery size", formatNum(s.settings.BatterySize)+" kWh"),
		row("Home rate", s.settings.Currency+formatNum(s.settings.HomeRate)+" / kWh"),
		row("Currency", s.settings.Currency),
		row("Distance unit", s.settings.DistanceUnit),
		row("Theme", s.settings.Theme),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
