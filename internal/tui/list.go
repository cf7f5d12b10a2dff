package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/zoobzio/bindz/hn"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2 2006")
	}
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderStory(s hn.Story, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	title := s.DisplayTitle()
	if title == "" {
		title = "(untitled)"
	}
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(title, width-4))
	}

	meta := []string{itemAuthorStyle.Render(s.AuthorOr("unknown"))}
	if when := relativeTime(s.Created()); when != "" {
		meta = append(meta, itemMetaStyle.Render(when))
	}
	meta = append(meta, itemMetaStyle.Render(fmt.Sprintf("%d points · %d comments", s.Points, s.NumComments)))

	return title + "\n  " + strings.Join(meta, itemMetaStyle.Render(" · "))
}

// visibleRange returns the window [start, end) of n items that keeps cursor
// visible when at most visible items fit, starting from offset.
func visibleRange(n, cursor, offset, visible int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	start := offset
	if cursor < start {
		start = cursor
	}
	if cursor >= start+visible {
		start = cursor - visible + 1
	}
	if start > n-visible {
		start = n - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > n {
		end = n
	}
	return start, end
}

// Each item is 2 lines + 1 blank line
const itemHeight = 3

func renderList(stories []hn.Story, cursor, offset, height, width int) string {
	start, end := visibleRange(len(stories), cursor, offset, height/itemHeight)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderStory(stories[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
