package model

// Pointer helpers for optional scalar fields. Absence is a nil pointer, never
// a zero value.

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// IndexOptions holds optional parameters for the index operation.
type IndexOptions struct {
	ID                  *string
	Routing             *string
	OpType              *string
	Refresh             *string
	Version             *int64
	VersionType         *string
	Timeout             *string
	WaitForActiveShards *string
	Pipeline            *string
}

// UpdateOptions holds optional parameters for the update operation.
//
// Doc and Upsert are sent to the engine as opaque encoded JSON text, while
// ScriptParams are structurally converted into a generic map; the asymmetry
// matches the engine's wire contract.
type UpdateOptions struct {
	Routing         *string
	Refresh         *string
	Timeout         *string
	RetryOnConflict *int
	Doc             *Document
	Upsert          *Document
	DocAsUpsert     *bool
	DetectNoop      *bool
	ScriptedUpsert  *bool
	Script          *string
	ScriptType      *ScriptType
	ScriptLang      *string
	ScriptParams    *Document
	FetchSource     *bool
}

// GetOptions holds optional parameters for the get operation.
type GetOptions struct {
	Routing             *string
	Preference          *string
	Refresh             *string
	Realtime            *bool
	StoredFields        []string
	FetchSource         *bool
	FetchSourceIncludes []string
	FetchSourceExcludes []string
	Version             *int64
	VersionType         *string
}

// SearchOptions holds optional parameters for the search operation.
//
// Query, PostFilter and the per-name aggregation bodies pass through as raw
// encoded text; they are never structurally converted.
type SearchOptions struct {
	SearchType     *string
	Scroll         *string
	Timeout        *string
	TerminateAfter *int
	Routing        *string
	Preference     *string
	Query          *Document
	PostFilter     *Document
	MinScore       *float64
	Size           *int
	From           *int
	Explain        *bool
	Version        *bool
	FetchSource    *bool
	StoredFields   []string
	TrackScores    *bool
	Aggregations   *Document
	Sorts          []SortOption
	SearchAfter    []any
	ScriptFields   map[string]ScriptSpec
	TemplateName   *string
	TemplateType   *TemplateType
	TemplateParams *Document
}

// SearchScrollOptions holds optional parameters for scroll continuation.
type SearchScrollOptions struct {
	Scroll *string
}

// DeleteOptions holds optional parameters for the delete operation.
type DeleteOptions struct {
	Routing     *string
	Refresh     *string
	Version     *int64
	VersionType *string
	Timeout     *string
}

// SuggestOptions holds named suggestion variants for the suggest operation.
type SuggestOptions struct {
	Suggestions map[string]SuggestOption
}

// DeleteByQueryOptions holds optional parameters for delete-by-query.
type DeleteByQueryOptions struct {
	Timeout *string
	Routing *string
	Refresh *string
}
