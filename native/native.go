// Package native defines the builder-per-operation boundary to the remote
// search engine. The compiler applies option fields through these interfaces;
// the production implementation executes them with the engine client.
package native

import (
	"context"

	"github.com/olivere/elastic/v7"
)

// Client hands out one fresh request builder per operation. Builders are
// single-use: the compiling call owns a builder until Execute, after which no
// reference is retained.
type Client interface {
	PrepareIndex(index, typ string) IndexBuilder
	PrepareUpdate(index, typ, id string) UpdateBuilder
	PrepareGet(index, typ, id string) GetBuilder
	PrepareSearch(indices ...string) SearchBuilder
	PrepareSearchScroll(scrollID string) ScrollBuilder
	PrepareDelete(index, typ, id string) DeleteBuilder
	PrepareSuggest(indices ...string) SuggestBuilder
	PrepareDeleteByQuery(indices ...string) DeleteByQueryBuilder

	// Health reports the cluster status string.
	Health(ctx context.Context) (string, error)

	// Close releases the underlying engine client.
	Close() error
}

// IndexBuilder prepares a document index request.
type IndexBuilder interface {
	Source(body string)
	ID(id string)
	Routing(routing string)
	OpType(opType string)
	Refresh(refresh string)
	Version(version int64)
	VersionType(versionType string)
	Timeout(timeout string)
	WaitForActiveShards(waitFor string)
	Pipeline(pipeline string)
	Execute(ctx context.Context) (*elastic.IndexResponse, error)
}

// UpdateBuilder prepares a document update request.
type UpdateBuilder interface {
	Routing(routing string)
	Refresh(refresh string)
	Timeout(timeout string)
	RetryOnConflict(retries int)
	Doc(body string)
	Upsert(body string)
	DocAsUpsert(v bool)
	DetectNoop(v bool)
	ScriptedUpsert(v bool)
	Script(script *elastic.Script)
	FetchSource(v bool)
	Execute(ctx context.Context) (*elastic.UpdateResponse, error)
}

// GetBuilder prepares a document get request.
type GetBuilder interface {
	Routing(routing string)
	Preference(preference string)
	Refresh(refresh string)
	Realtime(v bool)
	StoredFields(fields ...string)
	FetchSource(v bool)
	// FetchSourceIncludeExclude compiles includes and excludes as one
	// combined directive, per the engine's paired-parameter contract.
	FetchSourceIncludeExclude(includes, excludes []string)
	Version(version int64)
	VersionType(versionType string)
	Execute(ctx context.Context) (*elastic.GetResult, error)
}

// SearchBuilder prepares a search request. Raw bodies (query, post filter,
// aggregations) are passed as encoded JSON text unmodified.
type SearchBuilder interface {
	SearchType(searchType string)
	Scroll(keepAlive string)
	Timeout(timeout string)
	TerminateAfter(n int)
	Routing(routing string)
	Preference(preference string)
	Query(rawBody string)
	PostFilter(rawBody string)
	MinScore(score float64)
	Size(size int)
	From(from int)
	Explain(v bool)
	Version(v bool)
	FetchSource(v bool)
	StoredFields(fields ...string)
	TrackScores(v bool)
	Aggregation(name, rawBody string)
	SortByField(field string, ascending bool)
	SortByScript(script *elastic.Script, typ string, ascending bool)
	SearchAfter(values ...any)
	ScriptField(name string, script *elastic.Script)
	TemplateID(id string, params map[string]any)
	TemplateInline(source string, params map[string]any)
	Execute(ctx context.Context) (*elastic.SearchResult, error)
}

// ScrollBuilder prepares a scroll continuation request.
type ScrollBuilder interface {
	Scroll(keepAlive string)
	Execute(ctx context.Context) (*elastic.SearchResult, error)
}

// DeleteBuilder prepares a document delete request.
type DeleteBuilder interface {
	Routing(routing string)
	Refresh(refresh string)
	Version(version int64)
	VersionType(versionType string)
	Timeout(timeout string)
	Execute(ctx context.Context) (*elastic.DeleteResponse, error)
}

// SuggestBuilder prepares a suggest-only request.
type SuggestBuilder interface {
	Suggester(s elastic.Suggester)
	Execute(ctx context.Context) (*elastic.SearchResult, error)
}

// DeleteByQueryBuilder prepares a delete-by-query request. Source carries the
// complete raw request body.
type DeleteByQueryBuilder interface {
	Source(rawBody string)
	Timeout(timeout string)
	Routing(routing string)
	Refresh(refresh string)
	Execute(ctx context.Context) (*elastic.BulkIndexByScrollResponse, error)
}
