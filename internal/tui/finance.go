package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/corkboard/internal/finance"
	"github.com/sadopc/corkboard/internal/workspace"
)

type financeModel struct {
	ws     *workspace.Workspace
	now    func() time.Time
	width  int
	height int

	month   time.Time
	summary finance.Summary
	txs     []finance.Transaction
	cursor  int
	chart   barchart.Model

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	title    *string
	amount   *string
	date     *string
	kind     *string
	category *string
}

func newFinanceModel(ws *workspace.Workspace, now func() time.Time) financeModel {
	title, amount, date, kind, category := "", "", "", string(finance.Debit), string(finance.Food)
	from, _ := finance.MonthBounds(now())
	f := financeModel{
		ws:       ws,
		now:      now,
		month:    from,
		chart:    barchart.New(60, 10),
		title:    &title,
		amount:   &amount,
		date:     &date,
		kind:     &kind,
		category: &category,
	}
	return f.reload()
}

func (f *financeModel) setSize(w, h int) {
	f.width = w
	f.height = h
	f.buildChart()
}

// reload recomputes the month summary and lists the month's transactions,
// newest date first.
func (f financeModel) reload() financeModel {
	f.summary = f.ws.Finance.Monthly(f.month)
	f.txs = nil
	for _, t := range f.ws.Finance.List() {
		if d, ok := t.Day(); ok && !d.Before(f.summary.From) && !d.After(f.summary.To) {
			f.txs = append(f.txs, t)
		}
	}
	slices.SortStableFunc(f.txs, func(a, b finance.Transaction) int {
		return strings.Compare(b.Date, a.Date)
	})
	f.cursor = clamp(f.cursor, 0, len(f.txs)-1)
	f.buildChart()
	return f
}

func (f *financeModel) buildChart() {
	chartWidth := max(20, f.width/2-6)
	chartHeight := 10
	if f.height > 30 {
		chartHeight = 14
	}
	f.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, ct := range f.summary.ByCategory {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ct.Category.Color()))
		bars = append(bars, barchart.BarData{
			Label:  truncate(ct.Category.Label(), max(3, chartWidth/len(f.summary.ByCategory)-1)),
			Values: []barchart.BarValue{{Name: ct.Category.Label(), Value: ct.Amount, Style: style}},
		})
	}
	f.chart.PushAll(bars)
	f.chart.Draw()
}

func (f financeModel) selected() (finance.Transaction, bool) {
	if f.cursor < 0 || f.cursor >= len(f.txs) {
		return finance.Transaction{}, false
	}
	return f.txs[f.cursor], true
}

func (f financeModel) update(msg tea.Msg) (financeModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch {
	case key.Matches(km, keys.Up):
		f.cursor = clamp(f.cursor-1, 0, len(f.txs)-1)
	case key.Matches(km, keys.Down):
		f.cursor = clamp(f.cursor+1, 0, len(f.txs)-1)
	case key.Matches(km, keys.Left), key.Matches(km, keys.PrevMonth):
		f.month = f.month.AddDate(0, -1, 0)
		f.cursor = 0
		return f.reload(), nil
	case key.Matches(km, keys.Right), key.Matches(km, keys.NextMonth):
		f.month = f.month.AddDate(0, 1, 0)
		f.cursor = 0
		return f.reload(), nil
	case key.Matches(km, keys.Today):
		f.month, _ = finance.MonthBounds(f.now())
		f.cursor = 0
		return f.reload(), nil
	case key.Matches(km, keys.New):
		return f.showForm()
	case key.Matches(km, keys.Delete):
		t, ok := f.selected()
		if !ok {
			return f, nil
		}
		f.ws.Finance.Remove(t.ID)
		return f.reload(), statusCmd(status("Deleted %q", t.Title))
	}
	return f, nil
}

func (f financeModel) showForm() (financeModel, tea.Cmd) {
	*f.title, *f.amount = "", ""
	*f.date = f.now().Format(finance.DateLayout)
	*f.kind = string(finance.Debit)
	*f.category = string(finance.Food)

	cats := make([]huh.Option[string], len(finance.Categories))
	for i, c := range finance.Categories {
		cats[i] = huh.NewOption(fmt.Sprintf("%s %s", dot(c.Color()), c.Label()), string(c))
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(f.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().Title("Amount").Placeholder("0.00").Value(f.amount).
				Validate(func(s string) error {
					if _, err := finance.ParseAmount(s); err != nil {
						return errors.New("enter a non-negative number")
					}
					return nil
				}),
			huh.NewInput().Title("Date").Value(f.date).
				Validate(func(s string) error {
					if _, err := time.Parse(finance.DateLayout, strings.TrimSpace(s)); err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Expense", string(finance.Debit)),
					huh.NewOption("Income", string(finance.Credit)),
				).Value(f.kind),
			huh.NewSelect[string]().Title("Category").Options(cats...).Value(f.category),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f financeModel) updateForm(msg tea.Msg) (financeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if fm, ok := form.(*huh.Form); ok {
		f.form = fm
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		f.form = nil
		t, ok := f.ws.Finance.Add(finance.Draft{
			Title:    *f.title,
			Amount:   *f.amount,
			Date:     strings.TrimSpace(*f.date),
			Type:     finance.Kind(*f.kind),
			Category: finance.Category(*f.category),
		})
		if !ok {
			return f, statusCmd(statusMsg{text: "Could not save the transaction", isError: true})
		}
		return f.reload(), statusCmd(status("Added %q", t.Title))
	}
	return f, cmd
}

func (f financeModel) view() string {
	w := f.width - 4

	if f.formActive && f.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Transaction"), "", f.form.View()),
		)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Finance"), "  ",
		subtitleStyle.Render(f.month.Format("January 2006")),
	)

	s := f.summary
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(0, 2).
		MarginRight(1)
	balance := successStyle
	if s.Balance < 0 {
		balance = errorStyle
	}
	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		box.Render(mutedStyle.Render("Expenses")+"\n"+errorStyle.Render(money(s.Expense))),
		box.Render(mutedStyle.Render("Income")+"\n"+successStyle.Render(money(s.Income))),
		box.Render(mutedStyle.Render("Balance")+"\n"+balance.Render(money(s.Balance))),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("Spending by category"), f.chart.View(), f.renderLegend(),
	)
	right := f.renderList(max(30, w-lipgloss.Width(left)-4))

	nav := mutedStyle.Render("  n: add  d: delete  ←/→: month  .: this month")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", boxes, "",
		lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right),
		"", nav,
	))
}

func (f financeModel) renderLegend() string {
	var parts []string
	for _, ct := range f.summary.ByCategory {
		parts = append(parts, fmt.Sprintf("%s %s %s", dot(ct.Category.Color()), ct.Category.Label(), mutedStyle.Render(money(ct.Amount))))
	}
	return strings.Join(parts, "\n")
}

func (f financeModel) renderList(w int) string {
	rows := []string{subtitleStyle.Render("Transactions")}
	if len(f.txs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(rows, mutedStyle.Render("  No transactions this month"))...)
	}

	visible := max(1, f.height-16)
	start := max(0, f.cursor-visible+1)
	for i := start; i < len(f.txs) && i < start+visible; i++ {
		t := f.txs[i]
		cursor, style := "  ", normalItemStyle
		if i == f.cursor {
			cursor, style = "> ", selectedItemStyle
		}
		amount := errorStyle.Render(fmt.Sprintf("%10s", "-"+money(t.Amount)))
		if t.Type == finance.Credit {
			amount = successStyle.Render(fmt.Sprintf("%10s", "+"+money(t.Amount)))
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s",
			cursor,
			mutedStyle.Render(t.Date),
			dot(t.Category.Color()),
			style.Render(fmt.Sprintf("%-*s", max(8, w-30), truncate(t.Title, max(8, w-30)))),
			amount,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
