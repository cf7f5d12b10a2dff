package app

import "github.com/zoobzio/bindz/hn"

// Snapshot is the composed state handed to the renderer on every update.
//
// Stories holds the most recently delivered search, which may belong to an
// earlier request than Query, Subject and Page describe while a newer search
// is still outstanding.
type Snapshot struct {
	Query   string
	Subject hn.Subject
	Page    int
	Stories []hn.Story
	Err     error

	// Fetched is set once any search result, success or failure, has been
	// delivered. An empty Stories with Fetched set means no hits.
	Fetched bool
}

// Loading reports whether there is nothing to show yet: no stories and no
// failure.
func (s Snapshot) Loading() bool {
	return len(s.Stories) == 0 && s.Err == nil
}

// Failed reports whether the last delivered search failed.
func (s Snapshot) Failed() bool {
	return s.Err != nil
}
