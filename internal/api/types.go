package api

import (
	"time"

	"marquee/internal/catalog"
	"marquee/internal/envelope"
	"marquee/internal/episodes"
	"marquee/internal/upstream"
)

// ListResult is one normalized page of a list resource.
type ListResult struct {
	Kind       upstream.ResourceKind `json:"kind"`
	ID         string                `json:"id,omitempty"`
	Items      []catalog.Item        `json:"items"`
	Pagination envelope.Pagination   `json:"pagination"`
	Cached     bool                  `json:"cached"`
	Stale      bool                  `json:"stale"`
	StaleSince *time.Time            `json:"staleSince,omitempty"`
}

// FanOutResult is the settled outcome of one fetch in a fan-out.
type FanOutResult struct {
	Query  upstream.ListQuery `json:"-"`
	Result ListResult         `json:"result"`
	Err    error              `json:"-"`
}

// TitleView is a title detail with its resolved episodes.
type TitleView struct {
	Item     catalog.Item    `json:"item"`
	Episodes episodes.Result `json:"episodes"`
}
