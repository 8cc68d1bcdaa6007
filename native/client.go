package native

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/olivere/elastic/v7"
	"github.com/sirupsen/logrus"
)

// Config carries the engine connection settings the client needs.
type Config struct {
	Addresses   []string
	Username    string
	Password    string
	Sniff       bool
	Healthcheck bool
	Gzip        bool
	LogLevel    string
}

// EngineClient is the production Client backed by the engine's HTTP client.
type EngineClient struct {
	client *elastic.Client
}

var _ Client = (*EngineClient)(nil)

// Open connects to the engine and returns a process-wide client. The caller
// owns the lifecycle and must Close it on shutdown.
func Open(cfg *Config, log *logrus.Logger) (*EngineClient, error) {
	options := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.Addresses...),
		elastic.SetSniff(cfg.Sniff),
		elastic.SetHealthcheck(cfg.Healthcheck),
		elastic.SetGzip(cfg.Gzip),
		// Decode numbers as json.Number so int64 values keep precision.
		elastic.SetDecoder(&elastic.NumberDecoder{}),
	}
	if cfg.Username != "" {
		options = append(options, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}
	options = append(options, loggerOptions(cfg.LogLevel, log)...)

	client, err := elastic.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("engine client creation error: %w", err)
	}
	return &EngineClient{client: client}, nil
}

// loggerOptions bridges the engine client's logging into logrus.
func loggerOptions(level string, log *logrus.Logger) []elastic.ClientOptionFunc {
	if log == nil {
		return nil
	}
	switch {
	case strings.EqualFold(level, "trace"):
		return []elastic.ClientOptionFunc{
			elastic.SetErrorLog(&errorLogger{log}),
			elastic.SetInfoLog(&infoLogger{log}),
			elastic.SetTraceLog(&infoLogger{log}),
		}
	case strings.EqualFold(level, "info"):
		return []elastic.ClientOptionFunc{
			elastic.SetErrorLog(&errorLogger{log}),
			elastic.SetInfoLog(&infoLogger{log}),
		}
	default:
		// Errors only.
		return []elastic.ClientOptionFunc{
			elastic.SetErrorLog(&errorLogger{log}),
		}
	}
}

type errorLogger struct{ log *logrus.Logger }

func (l *errorLogger) Printf(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

type infoLogger struct{ log *logrus.Logger }

func (l *infoLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

// Close stops the engine client.
func (c *EngineClient) Close() error {
	c.client.Stop()
	return nil
}

// Health reports the cluster status string.
func (c *EngineClient) Health(ctx context.Context) (string, error) {
	resp, err := c.client.ClusterHealth().Do(ctx)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

// Raw exposes the underlying engine client.
func (c *EngineClient) Raw() *elastic.Client {
	return c.client
}

func (c *EngineClient) PrepareIndex(index, typ string) IndexBuilder {
	svc := c.client.Index().Index(index)
	if typ != "" {
		svc = svc.Type(typ)
	}
	return &indexBuilder{svc: svc}
}

func (c *EngineClient) PrepareUpdate(index, typ, id string) UpdateBuilder {
	svc := c.client.Update().Index(index).Id(id)
	if typ != "" {
		svc = svc.Type(typ)
	}
	return &updateBuilder{svc: svc}
}

func (c *EngineClient) PrepareGet(index, typ, id string) GetBuilder {
	svc := c.client.Get().Index(index).Id(id)
	if typ != "" {
		svc = svc.Type(typ)
	}
	return &getBuilder{svc: svc}
}

func (c *EngineClient) PrepareSearch(indices ...string) SearchBuilder {
	return &searchBuilder{
		client:  c.client,
		indices: indices,
		source:  elastic.NewSearchSource(),
	}
}

func (c *EngineClient) PrepareSearchScroll(scrollID string) ScrollBuilder {
	return &scrollBuilder{svc: elastic.NewScrollService(c.client).ScrollId(scrollID)}
}

func (c *EngineClient) PrepareDelete(index, typ, id string) DeleteBuilder {
	svc := c.client.Delete().Index(index).Id(id)
	if typ != "" {
		svc = svc.Type(typ)
	}
	return &deleteBuilder{svc: svc}
}

func (c *EngineClient) PrepareSuggest(indices ...string) SuggestBuilder {
	return &suggestBuilder{client: c.client, indices: indices}
}

func (c *EngineClient) PrepareDeleteByQuery(indices ...string) DeleteByQueryBuilder {
	return &deleteByQueryBuilder{client: c.client, indices: indices}
}

type indexBuilder struct {
	svc *elastic.IndexService
}

func (b *indexBuilder) Source(body string) { b.svc = b.svc.BodyString(body) }
func (b *indexBuilder) ID(id string) { b.svc = b.svc.Id(id) }
func (b *indexBuilder) Routing(routing string) { b.svc = b.svc.Routing(routing) }
func (b *indexBuilder) OpType(opType string) { b.svc = b.svc.OpType(opType) }
func (b *indexBuilder) Refresh(refresh string) { b.svc = b.svc.Refresh(refresh) }
func (b *indexBuilder) Version(version int64) { b.svc = b.svc.Version(version) }
func (b *indexBuilder) VersionType(versionType string) { b.svc = b.svc.VersionType(versionType) }
func (b *indexBuilder) Timeout(timeout string) { b.svc = b.svc.Timeout(timeout) }
func (b *indexBuilder) WaitForActiveShards(w string) { b.svc = b.svc.WaitForActiveShards(w) }
func (b *indexBuilder) Pipeline(pipeline string) { b.svc = b.svc.Pipeline(pipeline) }

func (b *indexBuilder) Execute(ctx context.Context) (*elastic.IndexResponse, error) {
	return b.svc.Do(ctx)
}

type updateBuilder struct {
	svc *elastic.UpdateService
}

func (b *updateBuilder) Routing(routing string) { b.svc = b.svc.Routing(routing) }
func (b *updateBuilder) Refresh(refresh string) { b.svc = b.svc.Refresh(refresh) }
func (b *updateBuilder) Timeout(timeout string) { b.svc = b.svc.Timeout(timeout) }
func (b *updateBuilder) RetryOnConflict(retries int) { b.svc = b.svc.RetryOnConflict(retries) }
func (b *updateBuilder) DocAsUpsert(v bool) { b.svc = b.svc.DocAsUpsert(v) }
func (b *updateBuilder) DetectNoop(v bool) { b.svc = b.svc.DetectNoop(v) }
func (b *updateBuilder) ScriptedUpsert(v bool) { b.svc = b.svc.ScriptedUpsert(v) }
func (b *updateBuilder) FetchSource(v bool) { b.svc = b.svc.FetchSource(v) }

// Doc and Upsert receive pre-encoded JSON text; json.RawMessage embeds it in
// the request body unmodified.
func (b *updateBuilder) Doc(body string) { b.svc = b.svc.Doc(json.RawMessage(body)) }
func (b *updateBuilder) Upsert(body string) { b.svc = b.svc.Upsert(json.RawMessage(body)) }

func (b *updateBuilder) Script(script *elastic.Script) { b.svc = b.svc.Script(script) }

func (b *updateBuilder) Execute(ctx context.Context) (*elastic.UpdateResponse, error) {
	return b.svc.Do(ctx)
}

type getBuilder struct {
	svc *elastic.GetService
}

func (b *getBuilder) Routing(routing string) { b.svc = b.svc.Routing(routing) }
func (b *getBuilder) Preference(preference string) { b.svc = b.svc.Preference(preference) }
func (b *getBuilder) Refresh(refresh string) { b.svc = b.svc.Refresh(refresh) }
func (b *getBuilder) Realtime(v bool) { b.svc = b.svc.Realtime(v) }
func (b *getBuilder) StoredFields(fields ...string) { b.svc = b.svc.StoredFields(fields...) }
func (b *getBuilder) Version(version int64) { b.svc = b.svc.Version(version) }
func (b *getBuilder) VersionType(versionType string) { b.svc = b.svc.VersionType(versionType) }

func (b *getBuilder) FetchSource(v bool) {
	b.svc = b.svc.FetchSourceContext(elastic.NewFetchSourceContext(v))
}

func (b *getBuilder) FetchSourceIncludeExclude(includes, excludes []string) {
	fsc := elastic.NewFetchSourceContext(true).
		Include(includes...).
		Exclude(excludes...)
	b.svc = b.svc.FetchSourceContext(fsc)
}

func (b *getBuilder) Execute(ctx context.Context) (*elastic.GetResult, error) {
	return b.svc.Do(ctx)
}

type templateRef struct {
	id     string
	source string
	params map[string]any
}

type searchBuilder struct {
	client     *elastic.Client
	indices    []string
	source     *elastic.SearchSource
	searchType string
	routing    string
	preference string
	scroll     string
	template   *templateRef
}

func (b *searchBuilder) SearchType(searchType string) { b.searchType = searchType }
func (b *searchBuilder) Scroll(keepAlive string) { b.scroll = keepAlive }
func (b *searchBuilder) Routing(routing string) { b.routing = routing }
func (b *searchBuilder) Preference(preference string) { b.preference = preference }

func (b *searchBuilder) Timeout(timeout string) { b.source = b.source.Timeout(timeout) }
func (b *searchBuilder) TerminateAfter(n int) { b.source = b.source.TerminateAfter(n) }
func (b *searchBuilder) MinScore(score float64) { b.source = b.source.MinScore(score) }
func (b *searchBuilder) Size(size int) { b.source = b.source.Size(size) }
func (b *searchBuilder) From(from int) { b.source = b.source.From(from) }
func (b *searchBuilder) Explain(v bool) { b.source = b.source.Explain(v) }
func (b *searchBuilder) Version(v bool) { b.source = b.source.Version(v) }
func (b *searchBuilder) FetchSource(v bool) { b.source = b.source.FetchSource(v) }
func (b *searchBuilder) TrackScores(v bool) { b.source = b.source.TrackScores(v) }

func (b *searchBuilder) StoredFields(fields ...string) {
	b.source = b.source.StoredFields(fields...)
}

func (b *searchBuilder) Query(rawBody string) {
	b.source = b.source.Query(elastic.NewRawStringQuery(rawBody))
}

func (b *searchBuilder) PostFilter(rawBody string) {
	b.source = b.source.PostFilter(elastic.NewRawStringQuery(rawBody))
}

func (b *searchBuilder) Aggregation(name, rawBody string) {
	b.source = b.source.Aggregation(name, elastic.NewRawStringQuery(rawBody))
}

func (b *searchBuilder) SortByField(field string, ascending bool) {
	b.source = b.source.SortBy(elastic.NewFieldSort(field).Order(ascending))
}

func (b *searchBuilder) SortByScript(script *elastic.Script, typ string, ascending bool) {
	b.source = b.source.SortBy(elastic.NewScriptSort(script, typ).Order(ascending))
}

func (b *searchBuilder) SearchAfter(values ...any) {
	b.source = b.source.SearchAfter(values...)
}

func (b *searchBuilder) ScriptField(name string, script *elastic.Script) {
	b.source = b.source.ScriptField(elastic.NewScriptField(name, script))
}

func (b *searchBuilder) TemplateID(id string, params map[string]any) {
	b.template = &templateRef{id: id, params: params}
}

func (b *searchBuilder) TemplateInline(source string, params map[string]any) {
	b.template = &templateRef{source: source, params: params}
}

func (b *searchBuilder) Execute(ctx context.Context) (*elastic.SearchResult, error) {
	if b.template != nil {
		return b.executeTemplate(ctx)
	}
	if b.scroll != "" {
		// The scroll endpoint only runs the default search type.
		if b.searchType != "" {
			return nil, fmt.Errorf("search type %q is not supported with scroll", b.searchType)
		}
		svc := elastic.NewScrollService(b.client).
			Index(b.indices...).
			KeepAlive(b.scroll).
			SearchSource(b.source)
		if b.routing != "" {
			svc = svc.Routing(strings.Split(b.routing, ",")...)
		}
		if b.preference != "" {
			svc = svc.Preference(b.preference)
		}
		return svc.Do(ctx)
	}
	svc := b.client.Search(b.indices...).SearchSource(b.source)
	if b.searchType != "" {
		svc = svc.SearchType(b.searchType)
	}
	if b.routing != "" {
		svc = svc.Routing(strings.Split(b.routing, ",")...)
	}
	if b.preference != "" {
		svc = svc.Preference(b.preference)
	}
	return svc.Do(ctx)
}

// executeTemplate runs the request against the template search endpoint; the
// engine client has no builder for it.
func (b *searchBuilder) executeTemplate(ctx context.Context) (*elastic.SearchResult, error) {
	body := make(map[string]any)
	if b.template.id != "" {
		body["id"] = b.template.id
	} else {
		body["source"] = b.template.source
	}
	if b.template.params != nil {
		body["params"] = b.template.params
	}

	params := url.Values{}
	if b.searchType != "" {
		params.Set("search_type", b.searchType)
	}
	if b.routing != "" {
		params.Set("routing", b.routing)
	}
	if b.preference != "" {
		params.Set("preference", b.preference)
	}
	if b.scroll != "" {
		params.Set("scroll", b.scroll)
	}

	res, err := b.client.PerformRequest(ctx, elastic.PerformRequestOptions{
		Method: http.MethodPost,
		Path:   indicesPath(b.indices) + "/_search/template",
		Params: params,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	ret := new(elastic.SearchResult)
	if err := json.Unmarshal(res.Body, ret); err != nil {
		return nil, fmt.Errorf("decoding template search response: %w", err)
	}
	return ret, nil
}

type scrollBuilder struct {
	svc *elastic.ScrollService
}

func (b *scrollBuilder) Scroll(keepAlive string) { b.svc = b.svc.KeepAlive(keepAlive) }

func (b *scrollBuilder) Execute(ctx context.Context) (*elastic.SearchResult, error) {
	return b.svc.Do(ctx)
}

type deleteBuilder struct {
	svc *elastic.DeleteService
}

func (b *deleteBuilder) Routing(routing string) { b.svc = b.svc.Routing(routing) }
func (b *deleteBuilder) Refresh(refresh string) { b.svc = b.svc.Refresh(refresh) }
func (b *deleteBuilder) Version(version int64) { b.svc = b.svc.Version(version) }
func (b *deleteBuilder) VersionType(versionType string) { b.svc = b.svc.VersionType(versionType) }
func (b *deleteBuilder) Timeout(timeout string) { b.svc = b.svc.Timeout(timeout) }

func (b *deleteBuilder) Execute(ctx context.Context) (*elastic.DeleteResponse, error) {
	return b.svc.Do(ctx)
}

type suggestBuilder struct {
	client     *elastic.Client
	indices    []string
	suggesters []elastic.Suggester
}

func (b *suggestBuilder) Suggester(s elastic.Suggester) {
	b.suggesters = append(b.suggesters, s)
}

// Execute runs a zero-hit search carrying only suggesters; the engine removed
// the standalone suggest endpoint.
func (b *suggestBuilder) Execute(ctx context.Context) (*elastic.SearchResult, error) {
	source := elastic.NewSearchSource().Size(0)
	for _, s := range b.suggesters {
		source = source.Suggester(s)
	}
	return b.client.Search(b.indices...).SearchSource(source).Do(ctx)
}

type deleteByQueryBuilder struct {
	client  *elastic.Client
	indices []string
	body    string
	params  url.Values
}

func (b *deleteByQueryBuilder) Source(rawBody string) { b.body = rawBody }

func (b *deleteByQueryBuilder) Timeout(timeout string) { b.setParam("timeout", timeout) }
func (b *deleteByQueryBuilder) Routing(routing string) { b.setParam("routing", routing) }
func (b *deleteByQueryBuilder) Refresh(refresh string) { b.setParam("refresh", refresh) }

func (b *deleteByQueryBuilder) setParam(key, value string) {
	if b.params == nil {
		b.params = url.Values{}
	}
	b.params.Set(key, value)
}

// Execute posts the raw body to the delete-by-query endpoint directly; the
// request body was fully compiled upstream and must pass through unmodified.
func (b *deleteByQueryBuilder) Execute(ctx context.Context) (*elastic.BulkIndexByScrollResponse, error) {
	var body any
	if b.body != "" {
		body = json.RawMessage(b.body)
	} else {
		body = json.RawMessage(`{"query":{"match_all":{}}}`)
	}

	res, err := b.client.PerformRequest(ctx, elastic.PerformRequestOptions{
		Method: http.MethodPost,
		Path:   indicesPath(b.indices) + "/_delete_by_query",
		Params: b.params,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	ret := new(elastic.BulkIndexByScrollResponse)
	if err := json.Unmarshal(res.Body, ret); err != nil {
		return nil, fmt.Errorf("decoding delete-by-query response: %w", err)
	}
	return ret, nil
}

func indicesPath(indices []string) string {
	if len(indices) == 0 {
		return "/_all"
	}
	escaped := make([]string, len(indices))
	for i, index := range indices {
		escaped[i] = url.PathEscape(index)
	}
	return "/" + strings.Join(escaped, ",")
}
