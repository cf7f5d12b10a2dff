package hn

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultEndpoint is the public search API base URL.
const DefaultEndpoint = "https://hn.algolia.com/api/v1"

// Query is the request tuple a search is issued for. It is comparable, so a
// completed search can be recognized when the same tuple comes around again.
type Query struct {
	Subject Subject
	Page    int
	Text    string
}

// URL builds the request URL {endpoint}/{subject}?query={text}&page={page}.
// The same tuple always yields the same URL.
func (q Query) URL(endpoint string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(endpoint, "/"))
	b.WriteByte('/')
	b.WriteString(string(q.Subject))
	b.WriteString("?query=")
	b.WriteString(url.QueryEscape(q.Text))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(q.Page))
	return b.String()
}
