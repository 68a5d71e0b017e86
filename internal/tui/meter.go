package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/voltlog/internal/store"
)

type meterModel struct {
	store  *store.Store
	width  int
	height int

	bills    []store.MeterBill
	settings store.Settings
	cursor   int

	formActive bool
	form       *huh.Form
	editing    store.MeterBill

	formDate    *string
	formStart   *string
	formEnd     *string
	formAmount  *string
}

func newMeterModel(s *store.Store) meterModel {
	date, start, end, amount := "", "", "", ""
	return meterModel{
		store:      s,
		formDate:   &date,
		formStart:  &start,
		formEnd:    &end,
		formAmount: &amount,
	}
}

func (m *meterModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type billsDataMsg struct {
	bills    []store.MeterBill
	settings store.Settings
}

func (m meterModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return billsDataMsg{bills: m.store.Bills(), settings: m.store.Settings()}
	}
}

func (m meterModel) update(msg tea.Msg) (meterModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case billsDataMsg:
		m.bills = msg.bills
		m.settings = msg.settings
		if m.cursor >= len(m.bills) {
			m.cursor = max(0, len(m.bills)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.bills)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(store.MeterBill{})
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(m.bills) > 0 {
				return m.showForm(m.bills[m.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(m.bills) > 0 {
				m.store.DeleteBill(m.bills[m.cursor].ID)
				return m, tea.Batch(m.refresh(), func() tea.Msg {
					return statusMsg{text: "Bill deleted"}
				})
			}
		}
	}
	return m, nil
}

func (m meterModel) showForm(bill store.MeterBill) (meterModel, tea.Cmd) {
	m.editing = bill

	if bill.ID == "" {
		*m.formDate = time.Now().Format("2006-01-02")
		*m.formStart = ""
		*m.formEnd = ""
		*m.formAmount = ""
		// Pre-fill the start reading from the most recent bill
		if len(m.bills) > 0 {
			*m.formStart = numField(m.bills[0].EndReading)
		}
	} else {
		*m.formDate = time.UnixMilli(bill.Timestamp).Local().Format("2006-01-02")
		*m.formStart = numField(bill.StartReading)
		*m.formEnd = numField(bill.EndReading)
		*m.formAmount = numField(bill.Amount)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate),
			huh.NewInput().Title("Last reading").Value(m.formStart),
			huh.NewInput().Title("Current reading").Value(m.formEnd),
			huh.NewInput().Title("Bill amount").Value(m.formAmount),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m meterModel) updateForm(msg tea.Msg) (meterModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}

	return m, cmd
}

func (m meterModel) submitForm() (meterModel, tea.Cmd) {
	bill := m.editing
	bill.Timestamp = parseDateTime(*m.formDate, "")
	bill.StartReading = parseNum(*m.formStart)
	bill.EndReading = parseNum(*m.formEnd)
	bill.Amount = parseNum(*m.formAmount)
	bill.Units = 0 // rederived from the readings

	status := "Bill added"
	if bill.ID != "" {
		m.store.UpdateBill(bill)
		status = "Bill updated"
	} else {
		m.store.AddBill(bill)
	}

	return m, tea.Batch(m.refresh(), func() tea.Msg {
		return statusMsg{text: status}
	})
}

func (m meterModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Meter Bill")
		if m.editing.ID != "" {
			title = titleStyle.Render("Edit Meter Bill")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Meter")

	if len(m.bills) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No bills yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cur := m.settings.Currency

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	header := mutedStyle.Render(fmt.Sprintf("  %-14s %10s %10s %10s %12s",
		"Date", "Units", "Amount", "Rate", "Reading"))
	rows = append(rows, header)

	for i, bill := range m.bills {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-14s", cursor, formatDate(bill.Timestamp))) +
			fmt.Sprintf(" %10s %10s %10s %12s",
				formatNum(bill.Units),
				cur+formatNum(bill.Amount),
				cur+formatFixed(bill.Rate),
				formatNum(bill.EndReading),
			)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
