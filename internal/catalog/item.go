package catalog

import "marquee/internal/envelope"

// Item is the canonical form of one catalog entry. Title, ImageLowRes and
// ImageHighRes are never empty.
type Item struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	OriginalTitle   string   `json:"originalTitle"`
	ImageLowRes     string   `json:"imageLowRes"`
	ImageHighRes    string   `json:"imageHighRes"`
	Year            *int     `json:"year,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Quality         string   `json:"quality"`
	Language        string   `json:"language"`
	Kind            string   `json:"kind"`
	EpisodeProgress string   `json:"episodeProgress,omitempty"`
	EpisodeTotal    *int     `json:"episodeTotal,omitempty"`
	Slug            string   `json:"slug"`
}

// Page is one normalized list response.
type Page struct {
	Items      []Item              `json:"items"`
	Pagination envelope.Pagination `json:"pagination"`
}
