package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/voltlog/internal/store"
)

var chargeTypes = []string{"Home", "Public"}

type chargingModel struct {
	store  *store.Store
	width  int
	height int

	charges  []store.ChargeSession
	settings store.Settings
	cursor   int

	formActive bool
	form       *huh.Form
	editing    store.ChargeSession // zero ID means a new session

	// Form field pointers (survive value copies)
	formType     *string
	formDate     *string
	formTime     *string
	formOdometer *string
	formStartPct *string
	formEndPct   *string
	formUnits    *string
	formCost     *string
}

func newChargingModel(s *store.Store) chargingModel {
	typ, date, clock := "Home", "", ""
	odo, sp, ep, units, cost := "", "", "", "", ""
	return chargingModel{
		store:        s,
		formType:     &typ,
		formDate:     &date,
		formTime:     &clock,
		formOdometer: &odo,
		formStartPct: &sp,
		formEndPct:   &ep,
		formUnits:    &units,
		formCost:     &cost,
	}
}

func (c *chargingModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type chargesDataMsg struct {
	charges  []store.ChargeSession
	settings store.Settings
}

func (c chargingModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return chargesDataMsg{charges: c.store.Charges(), settings: c.store.Settings()}
	}
}

func (c chargingModel) update(msg tea.Msg) (chargingModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case chargesDataMsg:
		c.charges = msg.charges
		c.settings = msg.settings
		if c.cursor >= len(c.charges) {
			c.cursor = max(0, len(c.charges)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.charges)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showForm(store.ChargeSession{})
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(c.charges) > 0 {
				return c.showForm(c.charges[c.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(c.charges) > 0 {
				c.store.DeleteCharge(c.charges[c.cursor].ID)
				return c, tea.Batch(c.refresh(), func() tea.Msg {
					return statusMsg{text: "Session deleted"}
				})
			}
		}
	}
	return c, nil
}

func (c chargingModel) showForm(session store.ChargeSession) (chargingModel, tea.Cmd) {
	c.editing = session

	if session.ID == "" {
		now := time.Now()
		*c.formType = "Home"
		*c.formDate = now.Format("2006-01-02")
		*c.formTime = now.Format("15:04")
		*c.formOdometer = numField(c.store.LastOdometer())
		*c.formStartPct = ""
		*c.formEndPct = ""
		*c.formUnits = ""
		*c.formCost = ""
	} else {
		t := time.UnixMilli(session.Timestamp).Local()
		*c.formType = session.Type
		*c.formDate = t.Format("2006-01-02")
		*c.formTime = t.Format("15:04")
		*c.formOdometer = numField(session.Odometer)
		*c.formStartPct = numField(session.StartPct)
		*c.formEndPct = numField(session.BatteryPct)
		*c.formUnits = numField(session.Units)
		*c.formCost = numField(session.Cost)
	}

	typeOptions := make([]huh.Option[string], len(chargeTypes))
	for i, t := range chargeTypes {
		typeOptions[i] = huh.NewOption(t, t)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Charge Type").Options(typeOptions...).Value(c.formType),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(c.formDate),
			huh.NewInput().Title("Time (HH:MM)").Value(c.formTime),
			huh.NewInput().Title("Odometer").Value(c.formOdometer),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start battery %").Value(c.formStartPct),
			huh.NewInput().Title("End battery %").Value(c.formEndPct),
			huh.NewInput().Title("Units (kWh)").Value(c.formUnits),
			huh.NewInput().Title("Cost").Value(c.formCost),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c chargingModel) updateForm(msg tea.Msg) (chargingModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		return c.submitForm()
	}

	return c, cmd
}

func (c chargingModel) submitForm() (chargingModel, tea.Cmd) {
	session := c.editing
	session.Timestamp = parseDateTime(*c.formDate, *c.formTime)
	session.Type = *c.formType
	session.Odometer = parseNum(*c.formOdometer)
	session.StartPct = parseNum(*c.formStartPct)
	session.BatteryPct = parseNum(*c.formEndPct)
	session.Units = parseNum(*c.formUnits)
	session.Cost = parseNum(*c.formCost)

	status := "Session added"
	if session.ID != "" {
		session.DrivenKm = math.Max(session.Odometer-c.previousOdometer(session.ID), 0)
		c.store.UpdateCharge(session)
		status = "Session updated"
	} else {
		c.store.AddCharge(session)
	}

	return c, tea.Batch(c.refresh(), func() tea.Msg {
		return statusMsg{text: status}
	})
}

// previousOdometer returns the odometer of the session inserted just
// before the given one, or 0 when it is the oldest.
func (c chargingModel) previousOdometer(id string) float64 {
	for i := range c.charges {
		if c.charges[i].ID == id {
			if i+1 < len(c.charges) {
				return c.charges[i+1].Odometer
			}
			return 0
		}
	}
	return 0
}

func (c chargingModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Charge Session")
		if c.editing.ID != "" {
			title = titleStyle.Render("Edit Charge Session")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View()),
		)
	}

	title := titleStyle.Render("Charging")

	if len(c.charges) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No charge sessions yet. Press n to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cur := c.settings.Currency
	unit := c.settings.DistanceUnit

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	header := mutedStyle.Render(fmt.Sprintf("  %-14s %-8s %10s %10s %12s %10s",
		"Date", "Type", "kWh", "Cost", "Odometer", "Driven"))
	rows = append(rows, header)

	for i, session := range c.charges {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		typeMark := successStyle.Render("⌂")
		if session.Type == "Public" {
			typeMark = warningStyle.Render("⚡")
		}
		row := style.Render(fmt.Sprintf("%s%-14s", cursor, formatDate(session.Timestamp))) +
			fmt.Sprintf(" %s %-6s", typeMark, session.Type) +
			fmt.Sprintf(" %10s %10s %12s %10s",
				formatNum(session.Units),
				cur+formatNum(session.Cost),
				formatNum(session.Odometer),
				formatNum(session.DrivenKm)+" "+unit,
			)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
