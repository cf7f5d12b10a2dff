package hn

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStoryDecodeStoryHit(t *testing.T) {
	raw := `{
		"objectID": "8863",
		"title": "My YC app: Dropbox",
		"url": "http://www.getdropbox.com/u/2/screencast.html",
		"author": "dhouston",
		"created_at": "2007-04-04T19:16:40.000Z",
		"created_at_i": 1175714200,
		"num_comments": 71,
		"points": 111
	}`

	var s Story
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if s.DisplayTitle() != "My YC app: Dropbox" {
		t.Errorf("expected title, got %q", s.DisplayTitle())
	}
	if s.Link() != "http://www.getdropbox.com/u/2/screencast.html" {
		t.Errorf("expected url, got %q", s.Link())
	}
	if !s.Created().Equal(time.Unix(1175714200, 0)) {
		t.Errorf("expected created_at_i time, got %v", s.Created())
	}
	if s.NumComments != 71 {
		t.Errorf("expected 71 comments, got %d", s.NumComments)
	}
}

func TestStoryDecodeCommentHit(t *testing.T) {
	// Comment hits have null title/url and carry the parent story fields.
	raw := `{
		"objectID": "42",
		"title": null,
		"url": null,
		"story_title": "Show HN: bindz",
		"story_url": "https://example.com/bindz",
		"author": null,
		"created_at": "2024-01-02T03:04:05Z",
		"num_comments": null
	}`

	var s Story
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if s.DisplayTitle() != "Show HN: bindz" {
		t.Errorf("expected story_title fallback, got %q", s.DisplayTitle())
	}
	if s.Link() != "https://example.com/bindz" {
		t.Errorf("expected story_url fallback, got %q", s.Link())
	}
	if s.AuthorOr("unknown") != "unknown" {
		t.Errorf("expected author fallback, got %q", s.AuthorOr("unknown"))
	}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !s.Created().Equal(want) {
		t.Errorf("expected created_at fallback %v, got %v", want, s.Created())
	}
	if s.NumComments != 0 {
		t.Errorf("expected 0 comments for null, got %d", s.NumComments)
	}
}

func TestStoryCreatedUnknown(t *testing.T) {
	if !(Story{}).Created().IsZero() {
		t.Error("expected zero time for a story without timestamps")
	}
}
