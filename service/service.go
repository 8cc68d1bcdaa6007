// Package service exposes the remote search engine through a uniform
// asynchronous option-driven operation surface. Each operation compiles the
// present option fields onto a fresh native request builder, executes it, and
// delivers exactly one success or normalized-failure outcome on the returned
// channel.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nexlify/esbridge/model"
	"github.com/nexlify/esbridge/native"
)

// Service is the adapter facade. Compilers and mappers are stateless, so a
// single Service is safe for concurrent use; the native client handle is
// shared read-only across requests.
type Service struct {
	client    native.Client
	log       *logrus.Logger
	collector Collector
}

// NewService creates a service around an opened native client. The client's
// lifecycle stays with the caller.
func NewService(client native.Client, log *logrus.Logger, collector Collector) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if collector == nil {
		collector = NoOpCollector{}
	}
	return &Service{client: client, log: log, collector: collector}
}

// compileFailed records the outcome and fulfills out with the compile error,
// so the collector sees every invocation whether or not a request was issued.
func compileFailed[T any](s *Service, op string, out chan Result[T], err error) <-chan Result[T] {
	s.collector.Operation(op, err)
	fail(out, err)
	return out
}

// run executes fn on its own goroutine and fulfills out exactly once. The
// completion always flows through normalizeFailure on error; no operation has
// a bespoke failure path.
func run[T any](s *Service, ctx context.Context, op string, out chan Result[T], fn func(context.Context) (*T, error)) {
	go func() {
		value, err := fn(ctx)
		s.collector.Operation(op, err)
		if err != nil {
			fail(out, s.normalizeFailure(op, err))
			return
		}
		succeed(out, value)
	}()
}

// Index indexes a source document. A nil opts value leaves every request
// parameter at the engine default.
func (s *Service) Index(ctx context.Context, index, typ string, source *model.Document, opts *model.IndexOptions) <-chan Result[model.IndexResponse] {
	out := resultChan[model.IndexResponse]()
	b, err := compileIndex(s.client, index, typ, source, opts)
	if err != nil {
		return compileFailed(s, "index", out, err)
	}
	run(s, ctx, "index", out, func(ctx context.Context) (*model.IndexResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapIndexResponse(res), nil
	})
	return out
}

// Update applies a partial document or script update.
func (s *Service) Update(ctx context.Context, index, typ, id string, opts *model.UpdateOptions) <-chan Result[model.UpdateResponse] {
	out := resultChan[model.UpdateResponse]()
	b, err := compileUpdate(s.client, index, typ, id, opts)
	if err != nil {
		return compileFailed(s, "update", out, err)
	}
	run(s, ctx, "update", out, func(ctx context.Context) (*model.UpdateResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapUpdateResponse(res), nil
	})
	return out
}

// Get fetches a document by id.
func (s *Service) Get(ctx context.Context, index, typ, id string, opts *model.GetOptions) <-chan Result[model.GetResponse] {
	out := resultChan[model.GetResponse]()
	b, err := compileGet(s.client, index, typ, id, opts)
	if err != nil {
		return compileFailed(s, "get", out, err)
	}
	run(s, ctx, "get", out, func(ctx context.Context) (*model.GetResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapGetResponse(res), nil
	})
	return out
}

// Search runs a query across indices.
func (s *Service) Search(ctx context.Context, indices []string, opts *model.SearchOptions) <-chan Result[model.SearchResponse] {
	out := resultChan[model.SearchResponse]()
	b, err := compileSearch(s.client, indices, opts)
	if err != nil {
		return compileFailed(s, "search", out, err)
	}
	run(s, ctx, "search", out, func(ctx context.Context) (*model.SearchResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapSearchResponse(res), nil
	})
	return out
}

// SearchIndex searches a single index.
func (s *Service) SearchIndex(ctx context.Context, index string, opts *model.SearchOptions) <-chan Result[model.SearchResponse] {
	return s.Search(ctx, []string{index}, opts)
}

// SearchScroll continues a scroll by id.
func (s *Service) SearchScroll(ctx context.Context, scrollID string, opts *model.SearchScrollOptions) <-chan Result[model.SearchResponse] {
	out := resultChan[model.SearchResponse]()
	b := compileSearchScroll(s.client, scrollID, opts)
	run(s, ctx, "search_scroll", out, func(ctx context.Context) (*model.SearchResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapSearchResponse(res), nil
	})
	return out
}

// Delete removes a document by id.
func (s *Service) Delete(ctx context.Context, index, typ, id string, opts *model.DeleteOptions) <-chan Result[model.DeleteResponse] {
	out := resultChan[model.DeleteResponse]()
	b := compileDelete(s.client, index, typ, id, opts)
	run(s, ctx, "delete", out, func(ctx context.Context) (*model.DeleteResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapDeleteResponse(res), nil
	})
	return out
}

// Suggest runs named suggesters across indices.
func (s *Service) Suggest(ctx context.Context, indices []string, opts *model.SuggestOptions) <-chan Result[model.SuggestResponse] {
	out := resultChan[model.SuggestResponse]()
	b, err := compileSuggest(s.client, indices, opts)
	if err != nil {
		return compileFailed(s, "suggest", out, err)
	}
	run(s, ctx, "suggest", out, func(ctx context.Context) (*model.SuggestResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapSuggestResponse(res), nil
	})
	return out
}

// SuggestIndex suggests against a single index.
func (s *Service) SuggestIndex(ctx context.Context, index string, opts *model.SuggestOptions) <-chan Result[model.SuggestResponse] {
	return s.Suggest(ctx, []string{index}, opts)
}

// DeleteByQuery deletes every document matching the query body.
func (s *Service) DeleteByQuery(ctx context.Context, indices []string, query *model.Document, opts *model.DeleteByQueryOptions) <-chan Result[model.DeleteByQueryResponse] {
	out := resultChan[model.DeleteByQueryResponse]()
	b, err := compileDeleteByQuery(s.client, indices, query, opts)
	if err != nil {
		return compileFailed(s, "delete_by_query", out, err)
	}
	run(s, ctx, "delete_by_query", out, func(ctx context.Context) (*model.DeleteByQueryResponse, error) {
		res, err := b.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return mapDeleteByQueryResponse(res), nil
	})
	return out
}

// DeleteByQueryIndex deletes by query on a single index.
func (s *Service) DeleteByQueryIndex(ctx context.Context, index string, query *model.Document, opts *model.DeleteByQueryOptions) <-chan Result[model.DeleteByQueryResponse] {
	return s.DeleteByQuery(ctx, []string{index}, query, opts)
}
