package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/corkboard/internal/workspace"
)

// App is the root Bubble Tea model.
type App struct {
	ws     *workspace.Workspace
	width  int
	height int

	activeView viewState
	showHelp   bool

	board    boardModel
	calendar calendarModel
	finance  financeModel
	settings settingsModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(ws *workspace.Workspace) App {
	return newApp(ws, time.Now)
}

func newApp(ws *workspace.Workspace, now func() time.Time) App {
	applyTheme(ws.Prefs.Theme(), ws.Prefs.Get().BoardSkin)

	h := help.New()
	h.ShowAll = false

	return App{
		ws:         ws,
		activeView: viewBoard,
		board:      newBoardModel(ws),
		calendar:   newCalendarModel(ws, now),
		finance:    newFinanceModel(ws, now),
		settings:   newSettingsModel(ws),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.board.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.finance.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewBoard), nil
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewCalendar), nil
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewFinance), nil
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewSettings), nil
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames))), nil
		}

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil
	}

	return a.updateActiveView(msg)
}

// switchTo activates v with a fresh snapshot of its data.
func (a App) switchTo(v viewState) App {
	a.activeView = v
	switch v {
	case viewBoard:
		a.board = a.board.reload()
	case viewCalendar:
		a.calendar = a.calendar.reload()
	case viewFinance:
		a.finance = a.finance.reload()
	case viewSettings:
		a.settings = a.settings.reload()
	}
	return a
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewBoard:
		a.board, cmd = a.board.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewFinance:
		a.finance, cmd = a.finance.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBoard:
		return a.board.capturing()
	case viewCalendar:
		return a.calendar.formActive
	case viewFinance:
		return a.finance.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewBoard:
		content = a.board.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewFinance:
		content = a.finance.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("corkboard")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	right := ""
	if a.status != "" {
		style := mutedStyle
		if a.isErr {
			style = errorStyle
		}
		right = style.Render(" " + a.status)
	}

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
