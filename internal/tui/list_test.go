package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/zoobzio/bindz/hn"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
		{"日本語テスト", 5, "日本..."},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "Jun 15 2025"},
		{time.Time{}, ""},
	}
	for _, tt := range tests {
		got := relativeTime(tt.t)
		if got != tt.want {
			t.Errorf("relativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name                       string
		n, cursor, offset, visible int
		start, end                 int
	}{
		{"fits", 3, 1, 0, 5, 0, 3},
		{"cursor below window", 10, 6, 0, 3, 4, 7},
		{"cursor above window", 10, 2, 5, 3, 2, 5},
		{"keeps offset", 10, 5, 4, 3, 4, 7},
		{"clamps at end", 10, 9, 9, 3, 7, 10},
		{"empty", 0, 0, 0, 3, 0, 0},
		{"no room", 5, 2, 0, 0, 2, 3},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.n, tt.cursor, tt.offset, tt.visible)
		if start != tt.start || end != tt.end {
			t.Errorf("%s: expected [%d,%d), got [%d,%d)", tt.name, tt.start, tt.end, start, end)
		}
	}
}

func TestRenderStoryFallbacks(t *testing.T) {
	out := renderStory(hn.Story{StoryTitle: "parent story", NumComments: 4, Points: 9}, true, 60)

	if !strings.Contains(out, "parent story") {
		t.Errorf("expected story_title fallback, got %q", out)
	}
	if !strings.Contains(out, "unknown") {
		t.Errorf("expected author fallback, got %q", out)
	}
	if !strings.Contains(out, "9 points · 4 comments") {
		t.Errorf("expected counts, got %q", out)
	}
	if !strings.Contains(out, "> ") {
		t.Errorf("expected selection marker, got %q", out)
	}
}
