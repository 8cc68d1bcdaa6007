package service

import (
	"context"

	"github.com/olivere/elastic/v7"

	"github.com/nexlify/esbridge/native"
)

// Recording fakes for the native boundary. Each setter appends one call so
// tests can assert that exactly the present option fields were applied.

type recordedCall struct {
	name string
	args []any
}

type recorder struct {
	calls []recordedCall
}

func (r *recorder) record(name string, args ...any) {
	r.calls = append(r.calls, recordedCall{name: name, args: args})
}

func (r *recorder) find(name string) (recordedCall, bool) {
	for _, c := range r.calls {
		if c.name == name {
			return c, true
		}
	}
	return recordedCall{}, false
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

type fakeClient struct {
	index         *fakeIndexBuilder
	update        *fakeUpdateBuilder
	get           *fakeGetBuilder
	search        *fakeSearchBuilder
	scroll        *fakeScrollBuilder
	delete        *fakeDeleteBuilder
	suggest       *fakeSuggestBuilder
	deleteByQuery *fakeDeleteByQueryBuilder

	indexArgs   []string
	searchIdxs  []string
	suggestIdxs []string
	dbqIdxs     []string
	scrollID    string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		index:         &fakeIndexBuilder{},
		update:        &fakeUpdateBuilder{},
		get:           &fakeGetBuilder{},
		search:        &fakeSearchBuilder{},
		scroll:        &fakeScrollBuilder{},
		delete:        &fakeDeleteBuilder{},
		suggest:       &fakeSuggestBuilder{},
		deleteByQuery: &fakeDeleteByQueryBuilder{},
	}
}

func (c *fakeClient) PrepareIndex(index, typ string) native.IndexBuilder {
	c.indexArgs = []string{index, typ}
	return c.index
}

func (c *fakeClient) PrepareUpdate(index, typ, id string) native.UpdateBuilder {
	c.indexArgs = []string{index, typ, id}
	return c.update
}

func (c *fakeClient) PrepareGet(index, typ, id string) native.GetBuilder {
	c.indexArgs = []string{index, typ, id}
	return c.get
}

func (c *fakeClient) PrepareSearch(indices ...string) native.SearchBuilder {
	c.searchIdxs = indices
	return c.search
}

func (c *fakeClient) PrepareSearchScroll(scrollID string) native.ScrollBuilder {
	c.scrollID = scrollID
	return c.scroll
}

func (c *fakeClient) PrepareDelete(index, typ, id string) native.DeleteBuilder {
	c.indexArgs = []string{index, typ, id}
	return c.delete
}

func (c *fakeClient) PrepareSuggest(indices ...string) native.SuggestBuilder {
	c.suggestIdxs = indices
	return c.suggest
}

func (c *fakeClient) PrepareDeleteByQuery(indices ...string) native.DeleteByQueryBuilder {
	c.dbqIdxs = indices
	return c.deleteByQuery
}

func (c *fakeClient) Health(ctx context.Context) (string, error) { return "green", nil }
func (c *fakeClient) Close() error { return nil }

type fakeIndexBuilder struct {
	recorder
	res *elastic.IndexResponse
	err error
}

func (b *fakeIndexBuilder) Source(body string) { b.record("Source", body) }
func (b *fakeIndexBuilder) ID(id string) { b.record("ID", id) }
func (b *fakeIndexBuilder) Routing(routing string) { b.record("Routing", routing) }
func (b *fakeIndexBuilder) OpType(opType string) { b.record("OpType", opType) }
func (b *fakeIndexBuilder) Refresh(refresh string) { b.record("Refresh", refresh) }
func (b *fakeIndexBuilder) Version(version int64) { b.record("Version", version) }
func (b *fakeIndexBuilder) VersionType(versionType string) { b.record("VersionType", versionType) }
func (b *fakeIndexBuilder) Timeout(timeout string) { b.record("Timeout", timeout) }
func (b *fakeIndexBuilder) WaitForActiveShards(w string) { b.record("WaitForActiveShards", w) }
func (b *fakeIndexBuilder) Pipeline(pipeline string) { b.record("Pipeline", pipeline) }

func (b *fakeIndexBuilder) Execute(ctx context.Context) (*elastic.IndexResponse, error) {
	return b.res, b.err
}

type fakeUpdateBuilder struct {
	recorder
	res *elastic.UpdateResponse
	err error
}

func (b *fakeUpdateBuilder) Routing(routing string) { b.record("Routing", routing) }
func (b *fakeUpdateBuilder) Refresh(refresh string) { b.record("Refresh", refresh) }
func (b *fakeUpdateBuilder) Timeout(timeout string) { b.record("Timeout", timeout) }
func (b *fakeUpdateBuilder) RetryOnConflict(retries int) { b.record("RetryOnConflict", retries) }
func (b *fakeUpdateBuilder) Doc(body string) { b.record("Doc", body) }
func (b *fakeUpdateBuilder) Upsert(body string) { b.record("Upsert", body) }
func (b *fakeUpdateBuilder) DocAsUpsert(v bool) { b.record("DocAsUpsert", v) }
func (b *fakeUpdateBuilder) DetectNoop(v bool) { b.record("DetectNoop", v) }
func (b *fakeUpdateBuilder) ScriptedUpsert(v bool) { b.record("ScriptedUpsert", v) }
func (b *fakeUpdateBuilder) Script(script *elastic.Script) { b.record("Script", script) }
func (b *fakeUpdateBuilder) FetchSource(v bool) { b.record("FetchSource", v) }

func (b *fakeUpdateBuilder) Execute(ctx context.Context) (*elastic.UpdateResponse, error) {
	return b.res, b.err
}

type fakeGetBuilder struct {
	recorder
	res *elastic.GetResult
	err error
}

func (b *fakeGetBuilder) Routing(routing string) { b.record("Routing", routing) }
func (b *fakeGetBuilder) Preference(preference string) { b.record("Preference", preference) }
func (b *fakeGetBuilder) Refresh(refresh string) { b.record("Refresh", refresh) }
func (b *fakeGetBuilder) Realtime(v bool) { b.record("Realtime", v) }
func (b *fakeGetBuilder) StoredFields(fields ...string) { b.record("StoredFields", fields) }
func (b *fakeGetBuilder) FetchSource(v bool) { b.record("FetchSource", v) }
func (b *fakeGetBuilder) Version(version int64) { b.record("Version", version) }
func (b *fakeGetBuilder) VersionType(versionType string) { b.record("VersionType", versionType) }

func (b *fakeGetBuilder) FetchSourceIncludeExclude(includes, excludes []string) {
	b.record("FetchSourceIncludeExclude", includes, excludes)
}

func (b *fakeGetBuilder) Execute(ctx context.Context) (*elastic.GetResult, error) {
	return b.res, b.err
}

type fakeSearchBuilder struct {
	recorder
	res *elastic.SearchResult
	err error
}

func (b *fakeSearchBuilder) SearchType(searchType string) { b.record("SearchType", searchType) }
func (b *fakeSearchBuilder) Scroll(keepAlive string) { b.record("Scroll", keepAlive) }
func (b *fakeSearchBuilder) Timeout(timeout string) { b.record("Timeout", timeout) }
func (b *fakeSearchBuilder) TerminateAfter(n int) { b.record("TerminateAfter", n) }
func (b *fakeSearchBuilder) Routing(routing string) { b.record("Routing", routing) }
func (b *fakeSearchBuilder) Preference(preference string) { b.record("Preference", preference) }
func (b *fakeSearchBuilder) Query(rawBody string) { b.record("Query", rawBody) }
func (b *fakeSearchBuilder) PostFilter(rawBody string) { b.record("PostFilter", rawBody) }
func (b *fakeSearchBuilder) MinScore(score float64) { b.record("MinScore", score) }
func (b *fakeSearchBuilder) Size(size int) { b.record("Size", size) }
func (b *fakeSearchBuilder) From(from int) { b.record("From", from) }
func (b *fakeSearchBuilder) Explain(v bool) { b.record("Explain", v) }
func (b *fakeSearchBuilder) Version(v bool) { b.record("Version", v) }
func (b *fakeSearchBuilder) FetchSource(v bool) { b.record("FetchSource", v) }
func (b *fakeSearchBuilder) StoredFields(f ...string) { b.record("StoredFields", f) }
func (b *fakeSearchBuilder) TrackScores(v bool) { b.record("TrackScores", v) }
func (b *fakeSearchBuilder) Aggregation(name, rawBody string) {
	b.record("Aggregation", name, rawBody)
}
func (b *fakeSearchBuilder) SortByField(field string, ascending bool) {
	b.record("SortByField", field, ascending)
}
func (b *fakeSearchBuilder) SortByScript(script *elastic.Script, typ string, ascending bool) {
	b.record("SortByScript", script, typ, ascending)
}
func (b *fakeSearchBuilder) SearchAfter(values ...any) { b.record("SearchAfter", values) }
func (b *fakeSearchBuilder) ScriptField(name string, script *elastic.Script) {
	b.record("ScriptField", name, script)
}
func (b *fakeSearchBuilder) TemplateID(id string, params map[string]any) {
	b.record("TemplateID", id, params)
}
func (b *fakeSearchBuilder) TemplateInline(source string, params map[string]any) {
	b.record("TemplateInline", source, params)
}

func (b *fakeSearchBuilder) Execute(ctx context.Context) (*elastic.SearchResult, error) {
	return b.res, b.err
}

type fakeScrollBuilder struct {
	recorder
	res *elastic.SearchResult
	err error
}

func (b *fakeScrollBuilder) Scroll(keepAlive string) { b.record("Scroll", keepAlive) }

func (b *fakeScrollBuilder) Execute(ctx context.Context) (*elastic.SearchResult, error) {
	return b.res, b.err
}

type fakeDeleteBuilder struct {
	recorder
	res *elastic.DeleteResponse
	err error
}

func (b *fakeDeleteBuilder) Routing(routing string) { b.record("Routing", routing) }
func (b *fakeDeleteBuilder) Refresh(refresh string) { b.record("Refresh", refresh) }
func (b *fakeDeleteBuilder) Version(version int64) { b.record("Version", version) }
func (b *fakeDeleteBuilder) VersionType(versionType string) { b.record("VersionType", versionType) }
func (b *fakeDeleteBuilder) Timeout(timeout string) { b.record("Timeout", timeout) }

func (b *fakeDeleteBuilder) Execute(ctx context.Context) (*elastic.DeleteResponse, error) {
	return b.res, b.err
}

type fakeSuggestBuilder struct {
	recorder
	res *elastic.SearchResult
	err error
}

func (b *fakeSuggestBuilder) Suggester(s elastic.Suggester) { b.record("Suggester", s) }

func (b *fakeSuggestBuilder) Execute(ctx context.Context) (*elastic.SearchResult, error) {
	return b.res, b.err
}

type fakeDeleteByQueryBuilder struct {
	recorder
	res *elastic.BulkIndexByScrollResponse
	err error
}

func (b *fakeDeleteByQueryBuilder) Source(rawBody string) { b.record("Source", rawBody) }
func (b *fakeDeleteByQueryBuilder) Timeout(timeout string) { b.record("Timeout", timeout) }
func (b *fakeDeleteByQueryBuilder) Routing(routing string) { b.record("Routing", routing) }
func (b *fakeDeleteByQueryBuilder) Refresh(refresh string) { b.record("Refresh", refresh) }

func (b *fakeDeleteByQueryBuilder) Execute(ctx context.Context) (*elastic.BulkIndexByScrollResponse, error) {
	return b.res, b.err
}
