package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(page, count int, status string, width int) string {
	left := fmt.Sprintf(" page %d · %d stories", page+1, count)
	if status != "" {
		left += " · " + status
	}

	prev := "^p prev"
	if page == 0 {
		prev = hintDisabledStyle.Render(prev)
	}
	right := " tab subject  " + prev + "  ^n next  enter open  esc quit "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
