package hn

import "time"

// Story is one search hit. Comment hits carry their parent story's title and
// URL in StoryTitle and StoryURL; the accessor methods fall back between the
// paired fields.
type Story struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	StoryTitle  string `json:"story_title"`
	URL         string `json:"url"`
	StoryURL    string `json:"story_url"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"`
	CreatedAtI  int64  `json:"created_at_i"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
}

// DisplayTitle returns Title, or StoryTitle when Title is empty.
func (s Story) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.StoryTitle
}

// Link returns URL, or StoryURL when URL is empty.
func (s Story) Link() string {
	if s.URL != "" {
		return s.URL
	}
	return s.StoryURL
}

// AuthorOr returns the author, or fallback when the hit has none.
func (s Story) AuthorOr(fallback string) string {
	if s.Author == "" {
		return fallback
	}
	return s.Author
}

// Created returns the creation time from created_at_i, falling back to the
// RFC 3339 created_at field. The zero time is returned when neither is usable.
func (s Story) Created() time.Time {
	if s.CreatedAtI > 0 {
		return time.Unix(s.CreatedAtI, 0)
	}
	if t, err := time.Parse(time.RFC3339, s.CreatedAt); err == nil {
		return t
	}
	return time.Time{}
}
