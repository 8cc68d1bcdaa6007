package service

import (
	"fmt"
	"sort"

	"github.com/olivere/elastic/v7"

	"github.com/nexlify/esbridge/model"
	"github.com/nexlify/esbridge/native"
)

// The compilers below apply exactly the option fields that are present onto a
// fresh native builder. An absent field never touches the builder, so the
// engine default always applies. Compilers are total over option values; the
// only compile-time failures are document encoding errors (cycles, invalid
// values) and unrecognized variant implementations.

func compileIndex(c native.Client, index, typ string, source *model.Document, opts *model.IndexOptions) (native.IndexBuilder, error) {
	if source == nil {
		return nil, ErrMissingSource
	}
	encoded, err := source.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding source: %w", err)
	}

	b := c.PrepareIndex(index, typ)
	b.Source(encoded)

	if opts == nil {
		return b, nil
	}
	if opts.ID != nil {
		b.ID(*opts.ID)
	}
	if opts.Routing != nil {
		b.Routing(*opts.Routing)
	}
	if opts.OpType != nil {
		b.OpType(*opts.OpType)
	}
	if opts.Refresh != nil {
		b.Refresh(*opts.Refresh)
	}
	if opts.Version != nil {
		b.Version(*opts.Version)
	}
	if opts.VersionType != nil {
		b.VersionType(*opts.VersionType)
	}
	if opts.Timeout != nil {
		b.Timeout(*opts.Timeout)
	}
	if opts.WaitForActiveShards != nil {
		b.WaitForActiveShards(*opts.WaitForActiveShards)
	}
	if opts.Pipeline != nil {
		b.Pipeline(*opts.Pipeline)
	}
	return b, nil
}

func compileUpdate(c native.Client, index, typ, id string, opts *model.UpdateOptions) (native.UpdateBuilder, error) {
	b := c.PrepareUpdate(index, typ, id)
	if opts == nil {
		return b, nil
	}
	if opts.Routing != nil {
		b.Routing(*opts.Routing)
	}
	if opts.Refresh != nil {
		b.Refresh(*opts.Refresh)
	}
	if opts.Timeout != nil {
		b.Timeout(*opts.Timeout)
	}
	if opts.RetryOnConflict != nil {
		b.RetryOnConflict(*opts.RetryOnConflict)
	}
	// Doc and upsert bodies pass through as encoded text; only script params
	// are structurally converted.
	if opts.Doc != nil {
		encoded, err := opts.Doc.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding doc: %w", err)
		}
		b.Doc(encoded)
	}
	if opts.Upsert != nil {
		encoded, err := opts.Upsert.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding upsert: %w", err)
		}
		b.Upsert(encoded)
	}
	if opts.DocAsUpsert != nil {
		b.DocAsUpsert(*opts.DocAsUpsert)
	}
	if opts.DetectNoop != nil {
		b.DetectNoop(*opts.DetectNoop)
	}
	if opts.ScriptedUpsert != nil {
		b.ScriptedUpsert(*opts.ScriptedUpsert)
	}
	if opts.Script != nil {
		script, err := compileUpdateScript(opts)
		if err != nil {
			return nil, err
		}
		b.Script(script)
	}
	if opts.FetchSource != nil {
		b.FetchSource(*opts.FetchSource)
	}
	return b, nil
}

// compileUpdateScript builds an inline script when no type is given, else a
// fully qualified script with type, language and converted parameters.
func compileUpdateScript(opts *model.UpdateOptions) (*elastic.Script, error) {
	if opts.ScriptType == nil {
		return elastic.NewScript(*opts.Script), nil
	}

	var script *elastic.Script
	switch *opts.ScriptType {
	case model.ScriptStored:
		script = elastic.NewScriptStored(*opts.Script)
	default:
		script = elastic.NewScriptInline(*opts.Script)
	}
	if opts.ScriptLang != nil {
		script = script.Lang(*opts.ScriptLang)
	}
	if opts.ScriptParams != nil {
		params, err := opts.ScriptParams.ToGenericForm()
		if err != nil {
			return nil, fmt.Errorf("converting script params: %w", err)
		}
		script = script.Params(params)
	}
	return script, nil
}

func compileGet(c native.Client, index, typ, id string, opts *model.GetOptions) (native.GetBuilder, error) {
	b := c.PrepareGet(index, typ, id)
	if opts == nil {
		return b, nil
	}
	if opts.Routing != nil {
		b.Routing(*opts.Routing)
	}
	if opts.Preference != nil {
		b.Preference(*opts.Preference)
	}
	if opts.Refresh != nil {
		b.Refresh(*opts.Refresh)
	}
	if opts.Realtime != nil {
		b.Realtime(*opts.Realtime)
	}
	if len(opts.StoredFields) > 0 {
		b.StoredFields(opts.StoredFields...)
	}
	if opts.FetchSource != nil {
		b.FetchSource(*opts.FetchSource)
	}
	// Includes and excludes compile together as one combined directive, even
	// when only one side is populated.
	if len(opts.FetchSourceIncludes) > 0 || len(opts.FetchSourceExcludes) > 0 {
		b.FetchSourceIncludeExclude(opts.FetchSourceIncludes, opts.FetchSourceExcludes)
	}
	if opts.Version != nil {
		b.Version(*opts.Version)
	}
	if opts.VersionType != nil {
		b.VersionType(*opts.VersionType)
	}
	return b, nil
}

func compileSearch(c native.Client, indices []string, opts *model.SearchOptions) (native.SearchBuilder, error) {
	b := c.PrepareSearch(indices...)
	if opts == nil {
		return b, nil
	}
	if opts.SearchType != nil {
		b.SearchType(*opts.SearchType)
	}
	if opts.Scroll != nil {
		b.Scroll(*opts.Scroll)
	}
	if opts.Timeout != nil {
		b.Timeout(*opts.Timeout)
	}
	if opts.TerminateAfter != nil {
		b.TerminateAfter(*opts.TerminateAfter)
	}
	if opts.Routing != nil {
		b.Routing(*opts.Routing)
	}
	if opts.Preference != nil {
		b.Preference(*opts.Preference)
	}
	if opts.Query != nil {
		encoded, err := opts.Query.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding query: %w", err)
		}
		b.Query(encoded)
	}
	if opts.PostFilter != nil {
		encoded, err := opts.PostFilter.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding post filter: %w", err)
		}
		b.PostFilter(encoded)
	}
	if opts.MinScore != nil {
		b.MinScore(*opts.MinScore)
	}
	if opts.Size != nil {
		b.Size(*opts.Size)
	}
	if opts.From != nil {
		b.From(*opts.From)
	}
	if opts.Explain != nil {
		b.Explain(*opts.Explain)
	}
	if opts.Version != nil {
		b.Version(*opts.Version)
	}
	if opts.FetchSource != nil {
		b.FetchSource(*opts.FetchSource)
	}
	if len(opts.StoredFields) > 0 {
		b.StoredFields(opts.StoredFields...)
	}
	if opts.TrackScores != nil {
		b.TrackScores(*opts.TrackScores)
	}
	if opts.Aggregations != nil {
		for _, name := range opts.Aggregations.Keys() {
			value, _ := opts.Aggregations.Get(name)
			encoded, err := model.EncodeValue(value)
			if err != nil {
				return nil, fmt.Errorf("encoding aggregation %q: %w", name, err)
			}
			b.Aggregation(name, encoded)
		}
	}
	if err := compileSorts(b, opts.Sorts); err != nil {
		return nil, err
	}
	if len(opts.SearchAfter) > 0 {
		b.SearchAfter(opts.SearchAfter...)
	}
	if err := compileScriptFields(b, opts.ScriptFields); err != nil {
		return nil, err
	}
	if opts.TemplateName != nil {
		if err := compileTemplate(b, opts); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// compileSorts dispatches over the closed sort variant set.
func compileSorts(b native.SearchBuilder, sorts []model.SortOption) error {
	for _, s := range sorts {
		switch v := s.(type) {
		case model.FieldSort:
			b.SortByField(v.Field, v.Order.Ascending())
		case *model.FieldSort:
			b.SortByField(v.Field, v.Order.Ascending())
		case model.ScriptSort:
			if err := compileScriptSort(b, v); err != nil {
				return err
			}
		case *model.ScriptSort:
			if err := compileScriptSort(b, *v); err != nil {
				return err
			}
		default:
			// Unreachable for the closed variant set.
			return fmt.Errorf("unsupported sort variant %T", s)
		}
	}
	return nil
}

func compileScriptSort(b native.SearchBuilder, s model.ScriptSort) error {
	script := elastic.NewScriptInline(s.Script)
	if s.Lang != nil {
		script = script.Lang(*s.Lang)
	}
	if s.Params != nil {
		params, err := s.Params.ToGenericForm()
		if err != nil {
			return fmt.Errorf("converting sort script params: %w", err)
		}
		script = script.Params(params)
	}
	b.SortByScript(script, string(s.Type), s.Order.Ascending())
	return nil
}

// compileScriptFields compiles per-field inline scripts in stable name order.
func compileScriptFields(b native.SearchBuilder, fields map[string]model.ScriptSpec) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := fields[name]
		script := elastic.NewScriptInline(spec.Script)
		if spec.Lang != nil {
			script = script.Lang(*spec.Lang)
		}
		if spec.Params != nil {
			params, err := spec.Params.ToGenericForm()
			if err != nil {
				return fmt.Errorf("converting script field %q params: %w", name, err)
			}
			script = script.Params(params)
		}
		b.ScriptField(name, script)
	}
	return nil
}

// compileTemplate compiles a template reference; a bare name with no type
// resolves to a stored-template id reference.
func compileTemplate(b native.SearchBuilder, opts *model.SearchOptions) error {
	var params map[string]any
	if opts.TemplateParams != nil {
		converted, err := opts.TemplateParams.ToGenericForm()
		if err != nil {
			return fmt.Errorf("converting template params: %w", err)
		}
		params = converted
	}

	if opts.TemplateType != nil && *opts.TemplateType == model.TemplateInline {
		// For inline templates the name field carries the template source.
		b.TemplateInline(*opts.TemplateName, params)
		return nil
	}
	b.TemplateID(*opts.TemplateName, params)
	return nil
}

func compileSearchScroll(c native.Client, scrollID string, opts *model.SearchScrollOptions) native.ScrollBuilder {
	b := c.PrepareSearchScroll(scrollID)
	if opts != nil && opts.Scroll != nil {
		b.Scroll(*opts.Scroll)
	}
	return b
}

func compileDelete(c native.Client, index, typ, id string, opts *model.DeleteOptions) native.DeleteBuilder {
	b := c.PrepareDelete(index, typ, id)
	if opts == nil {
		return b
	}
	if opts.Routing != nil {
		b.Routing(*opts.Routing)
	}
	if opts.Refresh != nil {
		b.Refresh(*opts.Refresh)
	}
	if opts.Version != nil {
		b.Version(*opts.Version)
	}
	if opts.VersionType != nil {
		b.VersionType(*opts.VersionType)
	}
	if opts.Timeout != nil {
		b.Timeout(*opts.Timeout)
	}
	return b
}

func compileSuggest(c native.Client, indices []string, opts *model.SuggestOptions) (native.SuggestBuilder, error) {
	b := c.PrepareSuggest(indices...)
	if opts == nil || len(opts.Suggestions) == 0 {
		return b, nil
	}

	names := make([]string, 0, len(opts.Suggestions))
	for name := range opts.Suggestions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch v := opts.Suggestions[name].(type) {
		case model.CompletionSuggest:
			b.Suggester(compileCompletion(name, v))
		case *model.CompletionSuggest:
			b.Suggester(compileCompletion(name, *v))
		default:
			return nil, fmt.Errorf("%w: %q is %T", ErrUnsupportedSuggester, name, v)
		}
	}
	return b, nil
}

func compileCompletion(name string, opt model.CompletionSuggest) elastic.Suggester {
	cs := elastic.NewCompletionSuggester(name)
	if opt.Text != nil {
		cs = cs.Text(*opt.Text)
	}
	if opt.Field != nil {
		cs = cs.Field(*opt.Field)
	}
	if opt.Size != nil {
		cs = cs.Size(*opt.Size)
	}
	return cs
}

func compileDeleteByQuery(c native.Client, indices []string, query *model.Document, opts *model.DeleteByQueryOptions) (native.DeleteByQueryBuilder, error) {
	b := c.PrepareDeleteByQuery(indices...)
	if query != nil {
		encoded, err := query.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding query: %w", err)
		}
		// The engine requires the query wrapped under a "query" key.
		b.Source(`{"query": ` + encoded + `}`)
	}
	if opts == nil {
		return b, nil
	}
	if opts.Timeout != nil {
		b.Timeout(*opts.Timeout)
	}
	if opts.Routing != nil {
		b.Routing(*opts.Routing)
	}
	if opts.Refresh != nil {
		b.Refresh(*opts.Refresh)
	}
	return b, nil
}
