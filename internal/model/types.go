package model

import "time"

// Snippet is a piece of user text persisted together with its AI summary.
type Snippet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// SnippetPage is one page of snippets plus the unfiltered total.
// Take and Skip echo the effective values used for the query.
type SnippetPage struct {
	Data  []*Snippet `json:"data"`
	Total int        `json:"total"`
	Take  int        `json:"take"`
	Skip  int        `json:"skip"`
}

// PageRequest carries optional pagination parameters as received from a client.
// A nil field means the parameter was not supplied.
type PageRequest struct {
	Take *int
	Skip *int
}

// ListSnippetsRequest captures the resolved paging used when listing snippets.
type ListSnippetsRequest struct {
	Take int
	Skip int
}
