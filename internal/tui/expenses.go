package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/voltlog/internal/stats"
	"github.com/sadopc/voltlog/internal/store"
)

var expenseCategories = []string{"Service", "Insurance", "Repairs", "Accessories", "Wash", "Toll", "Parking", "Other"}

type expensesModel struct {
	store  *store.Store
	width  int
	height int

	expenses []store.Expense
	summary  stats.ExpenseStats
	settings store.Settings
	cursor   int

	formActive bool
	form       *huh.Form
	editing    store.Expense

	formCategory *string
	formDate     *string
	formAmount   *string
	formOdometer *string
	formNote     *string
}

func newExpensesModel(s *store.Store) expensesModel {
	cat, date, amount, odo, note := expenseCategories[0], "", "", "", ""
	return expensesModel{
		store:        s,
		formCategory: &cat,
		formDate:     &date,
		formAmount:   &amount,
		formOdometer: &odo,
		formNote:     &note,
	}
}

func (e *expensesModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

type expensesDataMsg struct {
	expenses []store.Expense
	summary  stats.ExpenseStats
	settings store.Settings
}

func (e expensesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		expenses := e.store.Expenses()
		return expensesDataMsg{
			expenses: expenses,
			summary:  stats.ComputeExpenseStats(expenses),
			settings: e.store.Settings(),
		}
	}
}

func (e expensesModel) update(msg tea.Msg) (expensesModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case expensesDataMsg:
		e.expenses = msg.expenses
		e.summary = msg.summary
		e.settings = msg.settings
		if e.cursor >= len(e.expenses) {
			e.cursor = max(0, len(e.expenses)-1)
		}
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
			}
		case key.Matches(msg, keys.Down):
			if e.cursor < len(e.expenses)-1 {
				e.cursor++
			}
		case key.Matches(msg, keys.New):
			return e.showForm(store.Expense{})
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(e.expenses) > 0 {
				return e.showForm(e.expenses[e.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(e.expenses) > 0 {
				e.store.DeleteExpense(e.expenses[e.cursor].ID)
				return e, tea.Batch(e.refresh(), func() tea.Msg {
					return statusMsg{text: "Expense deleted"}
				})
			}
		}
	}
	return e, nil
}

func (e expensesModel) showForm(expense store.Expense) (expensesModel, tea.Cmd) {
	e.editing = expense

	if expense.ID == "" {
		*e.formCategory = expenseCategories[0]
		*e.formDate = time.Now().Format("2006-01-02")
		*e.formAmount = ""
		*e.formOdometer = ""
		*e.formNote = ""
	} else {
		*e.formCategory = expense.Category
		*e.formDate = time.UnixMilli(expense.Timestamp).Local().Format("2006-01-02")
		*e.formAmount = numField(expense.Amount)
		*e.formOdometer = numField(expense.Odometer)
		*e.formNote = expense.Description
	}

	catOptions := make([]huh.Option[string], len(expenseCategories))
	for i, c := range expenseCategories {
		catOptions[i] = huh.NewOption(c, c)
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(e.formCategory),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(e.formDate),
			huh.NewInput().Title("Amount").Value(e.formAmount),
			huh.NewInput().Title("Odometer").Value(e.formOdometer),
			huh.NewInput().Title("Description").Value(e.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e expensesModel) updateForm(msg tea.Msg) (expensesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		return e.submitForm()
	}

	return e, cmd
}

func (e expensesModel) submitForm() (expensesModel, tea.Cmd) {
	expense := e.editing
	expense.Timestamp = parseDateTime(*e.formDate, "")
	expense.Category = *e.formCategory
	expense.Amount = parseNum(*e.formAmount)
	expense.Odometer = parseNum(*e.formOdometer)
	expense.Description = *e.formNote

	status := "Expense added"
	if expense.ID != "" {
		e.store.UpdateExpense(expense)
		status = "Expense updated"
	} else {
		e.store.AddExpense(expense)
	}

	return e, tea.Batch(e.refresh(), func() tea.Msg {
		return statusMsg{text: status}
	})
}

func (e expensesModel) view() string {
	w := e.width - 4

	if e.formActive && e.form != nil {
		title := titleStyle.Render("New Expense")
		if e.editing.ID != "" {
			title = titleStyle.Render("Edit Expense")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", e.form.View()),
		)
	}

	title := titleStyle.Render("Expenses")
	cur := e.settings.Currency

	if len(e.expenses) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No expenses yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	top := e.summary.TopCategory
	if top == "" {
		top = "—"
	}
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		renderTile(cur+formatNum(e.summary.Total), "", "Total Spent", true),
		renderTile(top, "", "Top Category", false),
	)

	var breakdown []string
	for _, ct := range e.summary.ByCategory {
		breakdown = append(breakdown, fmt.Sprintf("  %-14s %s",
			ct.Category, highlightStyle.Render(cur+formatNum(ct.Amount))))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, tiles)
	rows = append(rows, "")
	rows = append(rows, breakdown...)
	rows = append(rows, "")
	header := mutedStyle.Render(fmt.Sprintf("  %-14s %-14s %10s  %s", "Date", "Category", "Amount", "Description"))
	rows = append(rows, header)

	for i, expense := range e.expenses {
		cursor := "  "
		style := normalItemStyle
		if i == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-14s %-14s %10s",
			cursor, formatDate(expense.Timestamp), expense.Category, cur+formatNum(expense.Amount)))
		if expense.Description != "" {
			row += mutedStyle.Render("  " + expense.Description)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
