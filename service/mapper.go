package service

import (
	"encoding/json"

	"github.com/olivere/elastic/v7"

	"github.com/nexlify/esbridge/model"
)

// The mappers below extract the guaranteed field set from native responses
// into the public response model. They never fail for a well-formed response
// of a successful call.

func mapShards(shards *elastic.ShardsInfo) *model.Shards {
	if shards == nil {
		return nil
	}
	return &model.Shards{
		Total:      shards.Total,
		Successful: shards.Successful,
		Failed:     shards.Failed,
	}
}

func mapIndexResponse(res *elastic.IndexResponse) *model.IndexResponse {
	return &model.IndexResponse{
		Index:   res.Index,
		Type:    res.Type,
		ID:      res.Id,
		Version: res.Version,
		Created: res.Result == "created",
		Result:  res.Result,
		Shards:  mapShards(res.Shards),
	}
}

func mapUpdateResponse(res *elastic.UpdateResponse) *model.UpdateResponse {
	return &model.UpdateResponse{
		Index:   res.Index,
		Type:    res.Type,
		ID:      res.Id,
		Version: res.Version,
		Result:  res.Result,
		Shards:  mapShards(res.Shards),
	}
}

func mapGetResponse(res *elastic.GetResult) *model.GetResponse {
	out := &model.GetResponse{
		Index:  res.Index,
		Type:   res.Type,
		ID:     res.Id,
		Found:  res.Found,
		Fields: res.Fields,
	}
	if res.Version != nil {
		out.Version = *res.Version
	}
	out.Source = decodeSource(res.Source)
	return out
}

func mapDeleteResponse(res *elastic.DeleteResponse) *model.DeleteResponse {
	return &model.DeleteResponse{
		Index:   res.Index,
		Type:    res.Type,
		ID:      res.Id,
		Version: res.Version,
		Found:   res.Result == "deleted",
		Result:  res.Result,
		Shards:  mapShards(res.Shards),
	}
}

func mapSearchResponse(res *elastic.SearchResult) *model.SearchResponse {
	out := &model.SearchResponse{
		TookMillis: res.TookInMillis,
		TimedOut:   res.TimedOut,
		ScrollID:   res.ScrollId,
		Shards:     mapShards(res.Shards),
	}
	if res.Hits != nil {
		if res.Hits.TotalHits != nil {
			out.Hits.Total = res.Hits.TotalHits.Value
		}
		out.Hits.MaxScore = res.Hits.MaxScore
		out.Hits.Hits = make([]model.Hit, 0, len(res.Hits.Hits))
		for _, hit := range res.Hits.Hits {
			out.Hits.Hits = append(out.Hits.Hits, mapHit(hit))
		}
	}
	if len(res.Aggregations) > 0 {
		out.Aggregations = make(map[string]json.RawMessage, len(res.Aggregations))
		for name, raw := range res.Aggregations {
			out.Aggregations[name] = raw
		}
	}
	if len(res.Suggest) > 0 {
		out.Suggestions = mapSuggestions(res.Suggest)
	}
	return out
}

func mapHit(hit *elastic.SearchHit) model.Hit {
	if hit == nil {
		return model.Hit{}
	}
	return model.Hit{
		Index:   hit.Index,
		Type:    hit.Type,
		ID:      hit.Id,
		Score:   hit.Score,
		Version: hit.Version,
		Source:  decodeSource(hit.Source),
		Fields:  hit.Fields,
		Sort:    hit.Sort,
	}
}

func mapSuggestResponse(res *elastic.SearchResult) *model.SuggestResponse {
	return &model.SuggestResponse{
		Suggestions: mapSuggestions(res.Suggest),
	}
}

func mapSuggestions(suggest elastic.SearchSuggest) map[string][]model.Suggestion {
	if suggest == nil {
		return nil
	}
	out := make(map[string][]model.Suggestion, len(suggest))
	for name, entries := range suggest {
		mapped := make([]model.Suggestion, 0, len(entries))
		for _, entry := range entries {
			suggestion := model.Suggestion{
				Text:    entry.Text,
				Offset:  entry.Offset,
				Length:  entry.Length,
				Options: make([]model.SuggestionOption, 0, len(entry.Options)),
			}
			for _, option := range entry.Options {
				mapped2 := model.SuggestionOption{Text: option.Text, Score: option.Score}
				suggestion.Options = append(suggestion.Options, mapped2)
			}
			mapped = append(mapped, suggestion)
		}
		out[name] = mapped
	}
	return out
}

func mapDeleteByQueryResponse(res *elastic.BulkIndexByScrollResponse) *model.DeleteByQueryResponse {
	return &model.DeleteByQueryResponse{
		TookMillis:       int64(res.Took),
		TimedOut:         res.TimedOut,
		Total:            int64(res.Total),
		Deleted:          int64(res.Deleted),
		Batches:          int64(res.Batches),
		VersionConflicts: int64(res.VersionConflicts),
		Noops:            int64(res.Noops),
	}
}

// decodeSource unpacks a raw source body; a missing or malformed body maps to
// a nil source rather than a failure.
func decodeSource(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
