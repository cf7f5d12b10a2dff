package app

import (
	"github.com/zoobzio/bindz"
	"github.com/zoobzio/bindz/hn"
)

// Channels are the three user-editable inputs of a session.
type Channels struct {
	Query   *bindz.Source[string]
	Subject *bindz.Source[hn.Subject]
	Page    *bindz.Source[int]
}

// NewChannels creates the input channels holding the given initial values.
func NewChannels(query string, subject hn.Subject, page int) Channels {
	return Channels{
		Query:   bindz.NewSource(query).WithName("query"),
		Subject: bindz.NewSource(subject).WithName("subject"),
		Page:    bindz.NewSource(page).WithName("page"),
	}
}

// Snapshot returns the channels' current values with no stories.
func (c Channels) Snapshot() Snapshot {
	return Snapshot{
		Query:   c.Query.Get(),
		Subject: c.Subject.Get(),
		Page:    c.Page.Get(),
	}
}
