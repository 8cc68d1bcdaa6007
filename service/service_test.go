package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/olivere/elastic/v7"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nexlify/esbridge/model"
)

func TestIndexDeliversSuccess(t *testing.T) {
	c := newFakeClient()
	c.index.res = &elastic.IndexResponse{Index: "posts", Id: "1", Version: 1, Result: "created"}
	s, _ := newTestService(c)

	out := s.Index(context.Background(), "posts", "_doc", model.NewDocument().Put("a", 1), nil)

	res := receiveResult(t, out)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Value == nil || !res.Value.Created || res.Value.ID != "1" {
		t.Errorf("value = %+v", res.Value)
	}
	assertNoSecondResult(t, out)
}

func TestIndexDeliversNormalizedFailure(t *testing.T) {
	c := newFakeClient()
	c.index.err = &elastic.Error{
		Status:  409,
		Details: &elastic.ErrorDetails{Type: "version_conflict_engine_exception", Reason: "version conflict"},
	}
	s, _ := newTestService(c)

	out := s.Index(context.Background(), "posts", "_doc", model.NewDocument().Put("a", 1), nil)

	res := receiveResult(t, out)
	if res.Value != nil {
		t.Errorf("value = %+v", res.Value)
	}
	var engineErr *EngineError
	if !errors.As(res.Err, &engineErr) {
		t.Fatalf("expected *EngineError, got %v", res.Err)
	}
	if engineErr.Status != 409 || engineErr.Message != "version conflict" {
		t.Errorf("normalized = %+v", engineErr)
	}
	assertNoSecondResult(t, out)
}

func TestIndexCompileErrorDeliversWithoutExecution(t *testing.T) {
	c := newFakeClient()
	s, _ := newTestService(c)

	out := s.Index(context.Background(), "posts", "_doc", nil, nil)

	res := receiveResult(t, out)
	if !errors.Is(res.Err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", res.Err)
	}
	if len(c.index.calls) != 0 {
		t.Errorf("builder should be untouched, got %v", c.index.calls)
	}
	assertNoSecondResult(t, out)
}

func TestSuggestCompileErrorDeliversWithoutExecution(t *testing.T) {
	c := newFakeClient()
	s, _ := newTestService(c)

	out := s.Suggest(context.Background(), []string{"posts"}, &model.SuggestOptions{
		Suggestions: map[string]model.SuggestOption{"odd": unknownSuggest{}},
	})

	res := receiveResult(t, out)
	if !errors.Is(res.Err, ErrUnsupportedSuggester) {
		t.Fatalf("expected ErrUnsupportedSuggester, got %v", res.Err)
	}
	assertNoSecondResult(t, out)
}

func TestSearchIndexDelegatesSingleIndex(t *testing.T) {
	c := newFakeClient()
	c.search.res = &elastic.SearchResult{TookInMillis: 3}
	s, _ := newTestService(c)

	out := s.SearchIndex(context.Background(), "logs", nil)

	res := receiveResult(t, out)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(c.searchIdxs) != 1 || c.searchIdxs[0] != "logs" {
		t.Errorf("indices = %v", c.searchIdxs)
	}
}

func TestDeleteByQueryDeliversCounts(t *testing.T) {
	c := newFakeClient()
	c.deleteByQuery.res = &elastic.BulkIndexByScrollResponse{Total: 2, Deleted: 2, Batches: 1}
	s, _ := newTestService(c)

	query := model.NewDocument().Put("match_all", model.NewDocument())
	out := s.DeleteByQueryIndex(context.Background(), "posts", query, nil)

	res := receiveResult(t, out)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Value.Deleted != 2 || res.Value.Batches != 1 {
		t.Errorf("value = %+v", res.Value)
	}
	if len(c.dbqIdxs) != 1 || c.dbqIdxs[0] != "posts" {
		t.Errorf("indices = %v", c.dbqIdxs)
	}
}

func TestOperationsRecordCollectorOutcome(t *testing.T) {
	c := newFakeClient()
	c.get.res = &elastic.GetResult{Id: "1", Found: true}
	collector := &captureCollector{}
	log, _ := test.NewNullLogger()
	s := NewService(c, log, collector)

	receiveResult(t, s.Get(context.Background(), "posts", "_doc", "1", nil))

	collector.mu.Lock()
	defer collector.mu.Unlock()
	if len(collector.ops) != 1 || collector.ops[0] != "get" {
		t.Errorf("recorded ops = %v", collector.ops)
	}
}

func TestCompileErrorRecordsCollectorOutcome(t *testing.T) {
	c := newFakeClient()
	collector := &captureCollector{}
	log, _ := test.NewNullLogger()
	s := NewService(c, log, collector)

	res := receiveResult(t, s.Index(context.Background(), "posts", "_doc", nil, nil))
	if !errors.Is(res.Err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", res.Err)
	}

	collector.mu.Lock()
	defer collector.mu.Unlock()
	if len(collector.ops) != 1 || collector.ops[0] != "index" {
		t.Fatalf("recorded ops = %v", collector.ops)
	}
	if !errors.Is(collector.errs[0], ErrMissingSource) {
		t.Errorf("recorded err = %v", collector.errs[0])
	}
}

type captureCollector struct {
	mu   sync.Mutex
	ops  []string
	errs []error
}

func (c *captureCollector) Operation(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, op)
	c.errs = append(c.errs, err)
}

func receiveResult[T any](t *testing.T, out <-chan Result[T]) Result[T] {
	t.Helper()
	select {
	case res := <-out:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
		return Result[T]{}
	}
}

func assertNoSecondResult[T any](t *testing.T, out <-chan Result[T]) {
	t.Helper()
	select {
	case res, ok := <-out:
		if ok {
			t.Fatalf("unexpected second result: %+v", res)
		}
	case <-time.After(50 * time.Millisecond):
	}
}
