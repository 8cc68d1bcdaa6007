package model

// SortOrder represents a sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Ascending reports whether the order sorts ascending. An unset order
// defaults to ascending, matching the engine.
func (o SortOrder) Ascending() bool {
	return o != SortDesc
}

// SortOption is a tagged sort variant: FieldSort or ScriptSort. The variant
// set is closed; implementations outside this package are not possible.
type SortOption interface {
	sortOption()
}

// FieldSort sorts hits by a document field.
type FieldSort struct {
	Field string
	Order SortOrder
}

func (FieldSort) sortOption() {}

// ScriptSortType is the cast type of a script sort result.
type ScriptSortType string

const (
	ScriptSortNumber ScriptSortType = "number"
	ScriptSortString ScriptSortType = "string"
)

// ScriptSort sorts hits by an inline script result.
type ScriptSort struct {
	Script string
	Lang   *string
	Params *Document
	Type   ScriptSortType
	Order  SortOrder
}

func (ScriptSort) sortOption() {}

// SuggestOption is a tagged suggestion variant keyed by suggestion name in
// SuggestOptions. CompletionSuggest is the only shipped variant; the set is
// closed but designed for extension.
type SuggestOption interface {
	suggestOption()
}

// CompletionSuggest configures a completion suggester. Every field is
// optional.
type CompletionSuggest struct {
	Text  *string
	Field *string
	Size  *int
}

func (CompletionSuggest) suggestOption() {}

// ScriptType distinguishes inline script bodies from stored script ids.
type ScriptType string

const (
	ScriptInline ScriptType = "inline"
	ScriptStored ScriptType = "stored"
)

// TemplateType distinguishes stored search templates from inline template
// sources.
type TemplateType string

const (
	TemplateStored TemplateType = "stored"
	TemplateInline TemplateType = "inline"
)

// ScriptSpec describes a per-field script for search script fields. Params
// are structurally converted before compilation.
type ScriptSpec struct {
	Script string
	Lang   *string
	Params *Document
}
