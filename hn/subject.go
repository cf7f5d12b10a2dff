// Package hn is the Hacker News search domain: the subject enumeration,
// the story record returned by the search API, the request tuple and the
// HTTP client that performs a search.
package hn

import (
	"fmt"
	"strings"
)

// Subject selects the search endpoint. The string values are the URL path
// segments of the upstream search API and must not change.
type Subject string

const (
	// Popularity ranks results by relevance, then points, then comments.
	Popularity Subject = "search"

	// Date ranks results by creation date, newest first.
	Date Subject = "search_by_date"
)

// Subjects returns every subject in display order.
func Subjects() []Subject {
	return []Subject{Popularity, Date}
}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	return s == Popularity || s == Date
}

// Label returns the short human name of the subject.
func (s Subject) Label() string {
	switch s {
	case Popularity:
		return "popularity"
	case Date:
		return "date"
	default:
		return string(s)
	}
}

// Next returns the subject following s in display order, wrapping around.
func (s Subject) Next() Subject {
	all := Subjects()
	for i, candidate := range all {
		if candidate == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// ParseSubject accepts either the wire value ("search", "search_by_date")
// or the label ("popularity", "date"), case-insensitively.
func ParseSubject(s string) (Subject, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, candidate := range Subjects() {
		if v == string(candidate) || v == candidate.Label() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q (valid: search, search_by_date, popularity, date)", s)
}
