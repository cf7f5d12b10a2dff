package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoobzio/bindz/hn"
	"github.com/zoobzio/bindz/internal/observability"
)

// StatusObserver turns search events into status line updates.
type StatusObserver struct {
	send func(tea.Msg)
}

// NewStatusObserver creates an observer delivering StatusMsg values through
// send, typically (*tea.Program).Send.
func NewStatusObserver(send func(tea.Msg)) *StatusObserver {
	return &StatusObserver{send: send}
}

func (o *StatusObserver) OnEvent(_ context.Context, event observability.Event) {
	switch event.Type {
	case hn.EventSearchStart:
		o.send(StatusMsg("searching..."))
	case hn.EventSearchComplete:
		msg := fmt.Sprintf("%v hits", event.Data["hits"])
		if d, ok := event.Data["duration"].(time.Duration); ok {
			msg += " in " + d.Round(time.Millisecond).String()
		}
		o.send(StatusMsg(msg))
	case hn.EventSearchFailed:
		o.send(StatusMsg("search failed"))
	}
}
