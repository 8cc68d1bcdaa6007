package model

import "encoding/json"

// Shards reports shard participation for a write or search operation.
type Shards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// IndexResponse is the public result of an index operation.
type IndexResponse struct {
	Index   string  `json:"index"`
	Type    string  `json:"type,omitempty"`
	ID      string  `json:"id"`
	Version int64   `json:"version"`
	Created bool    `json:"created"`
	Result  string  `json:"result"`
	Shards  *Shards `json:"shards,omitempty"`
}

// UpdateResponse is the public result of an update operation.
type UpdateResponse struct {
	Index   string  `json:"index"`
	Type    string  `json:"type,omitempty"`
	ID      string  `json:"id"`
	Version int64   `json:"version"`
	Result  string  `json:"result"`
	Shards  *Shards `json:"shards,omitempty"`
}

// GetResponse is the public result of a get operation.
type GetResponse struct {
	Index   string         `json:"index"`
	Type    string         `json:"type,omitempty"`
	ID      string         `json:"id"`
	Version int64          `json:"version,omitempty"`
	Found   bool           `json:"found"`
	Source  map[string]any `json:"source,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// DeleteResponse is the public result of a delete operation.
type DeleteResponse struct {
	Index   string  `json:"index"`
	Type    string  `json:"type,omitempty"`
	ID      string  `json:"id"`
	Version int64   `json:"version"`
	Found   bool    `json:"found"`
	Result  string  `json:"result"`
	Shards  *Shards `json:"shards,omitempty"`
}

// Hit is a single search result.
type Hit struct {
	Index   string         `json:"index"`
	Type    string         `json:"type,omitempty"`
	ID      string         `json:"id"`
	Score   *float64       `json:"score,omitempty"`
	Version *int64         `json:"version,omitempty"`
	Source  map[string]any `json:"source,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Sort    []any          `json:"sort,omitempty"`
}

// Hits groups search results with total and max score.
type Hits struct {
	Total    int64    `json:"total"`
	MaxScore *float64 `json:"max_score,omitempty"`
	Hits     []Hit    `json:"hits"`
}

// SearchResponse is the public result of search and scroll operations.
type SearchResponse struct {
	TookMillis   int64                      `json:"took_millis"`
	TimedOut     bool                       `json:"timed_out"`
	ScrollID     string                     `json:"scroll_id,omitempty"`
	Shards       *Shards                    `json:"shards,omitempty"`
	Hits         Hits                       `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
	Suggestions  map[string][]Suggestion    `json:"suggestions,omitempty"`
}

// SuggestionOption is a single suggested candidate.
type SuggestionOption struct {
	Text  string  `json:"text"`
	Score float64 `json:"score,omitempty"`
}

// Suggestion is one suggestion entry for an input token.
type Suggestion struct {
	Text    string             `json:"text"`
	Offset  int                `json:"offset"`
	Length  int                `json:"length"`
	Options []SuggestionOption `json:"options"`
}

// SuggestResponse is the public result of a suggest operation.
type SuggestResponse struct {
	Suggestions map[string][]Suggestion `json:"suggestions"`
}

// DeleteByQueryResponse is the public result of a delete-by-query operation.
type DeleteByQueryResponse struct {
	TookMillis       int64 `json:"took_millis"`
	TimedOut         bool  `json:"timed_out"`
	Total            int64 `json:"total"`
	Deleted          int64 `json:"deleted"`
	Batches          int64 `json:"batches"`
	VersionConflicts int64 `json:"version_conflicts"`
	Noops            int64 `json:"noops"`
}
