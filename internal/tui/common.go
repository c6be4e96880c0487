package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// viewState represents the currently active view.
type viewState int

const (
	viewBoard viewState = iota
	viewCalendar
	viewFinance
	viewSettings
)

var viewNames = []string{"Board", "Calendar", "Finance", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

func status(format string, args ...any) statusMsg {
	return statusMsg{text: fmt.Sprintf(format, args...)}
}

// statusCmd reports s in the footer.
func statusCmd(s statusMsg) tea.Cmd {
	return func() tea.Msg { return s }
}

// --- Helpers ---

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func orUntitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
