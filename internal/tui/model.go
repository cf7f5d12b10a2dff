// Package tui is the terminal rendering boundary of hnz: a bubbletea model
// showing the search input, the subject selector and the story list of the
// latest session snapshot.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zoobzio/bindz"
	"github.com/zoobzio/bindz/hn"
	"github.com/zoobzio/bindz/internal/app"
	"github.com/zoobzio/bindz/internal/browser"
)

// Options configures a Model.
type Options struct {
	// Initial is shown until the first snapshot arrives.
	Initial app.Snapshot

	// Open launches a story link. Defaults to browser.Open.
	Open func(url string) error
}

// Model renders session snapshots and forwards input to a Dispatcher.
type Model struct {
	dispatch Dispatcher
	open     func(string) error

	input   textinput.Model
	spinner spinner.Model

	snap   app.Snapshot
	cursor int
	offset int
	status string
	err    error

	width  int
	height int
}

// New creates a Model dispatching to d.
func New(d Dispatcher, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search stories..."
	ti.Prompt = promptStyle.Render("search: ")
	ti.CharLimit = 200
	ti.SetValue(opts.Initial.Query)
	ti.CursorEnd()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	open := opts.Open
	if open == nil {
		open = browser.Open
	}

	return &Model{
		dispatch: d,
		open:     open,
		input:    ti,
		spinner:  sp,
		snap:     opts.Initial,
		width:    80,
		height:   24,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		m.snap = app.Snapshot(msg)
		if m.cursor >= len(m.snap.Stories) {
			m.cursor = max(0, len(m.snap.Stories)-1)
		}
		m.scroll()
		return m, nil

	case ScrollTopMsg:
		m.cursor = 0
		m.offset = 0
		return m, nil

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case openErrMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear sticky error on any keypress
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.report(m.dispatch.CycleSubject())
		return m, nil
	case "ctrl+n", "pgdown":
		m.report(m.dispatch.NextPage())
		return m, nil
	case "ctrl+p", "pgup":
		if m.snap.Page > 0 {
			m.report(m.dispatch.PrevPage())
		}
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}
		return m, nil
	case "down":
		if m.cursor < len(m.snap.Stories)-1 {
			m.cursor++
			m.scroll()
		}
		return m, nil
	case "enter":
		if story, ok := m.Selected(); ok {
			return m, openCmd(m.open, story.Link())
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.report(m.dispatch.Dispatch(app.EventChangeQuery, after))
	}
	return m, cmd
}

// listHeight is the space left for stories below the header and input.
func (m *Model) listHeight() int {
	return m.height - 6
}

func (m *Model) scroll() {
	m.offset, _ = visibleRange(len(m.snap.Stories), m.cursor, m.offset, m.listHeight()/itemHeight)
}

func (m *Model) report(err error) {
	if err != nil {
		m.err = err
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

// Selected returns the story under the cursor.
func (m *Model) Selected() (hn.Story, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Stories) {
		return hn.Story{}, false
	}
	return m.snap.Stories[m.cursor], true
}

// Snapshot returns the snapshot currently shown.
func (m *Model) Snapshot() app.Snapshot {
	return m.snap
}

// Cursor returns the index of the selected story.
func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Hacker News"))
	b.WriteString("  ")
	b.WriteString(renderTabs(m.snap.Subject))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.snap.Failed():
		b.WriteString(errorStyle.Render("  Search failed: " + describe(m.snap.Err)))
	case m.snap.Loading():
		b.WriteString("  " + m.spinner.View() + " Loading...")
	default:
		b.WriteString(renderList(m.snap.Stories, m.cursor, m.offset, m.listHeight(), m.width))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("  " + m.err.Error()))
	}

	view := b.String()
	if gap := m.height - lipgloss.Height(view) - 1; gap > 0 {
		view += strings.Repeat("\n", gap)
	}
	return view + "\n" + renderStatusBar(m.snap.Page, len(m.snap.Stories), m.status, m.width)
}

func renderTabs(active hn.Subject) string {
	tabs := make([]string, 0, len(hn.Subjects()))
	for _, s := range hn.Subjects() {
		if s == active {
			tabs = append(tabs, tabActiveStyle.Render(s.Label()))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(s.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// describe strips the stage wrapper so the view shows the underlying cause.
func describe(err error) string {
	var se *bindz.StreamError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
