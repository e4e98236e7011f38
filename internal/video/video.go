// Package video selects an instructional video for a canonical exercise by
// generating search queries, fanning them out to an external provider, and
// scoring the returned candidates against category heuristics.
package video

import (
	"context"
	"errors"
)

// SearchResult is the lite record the provider's search call returns.
type SearchResult struct {
	ID           string
	Title        string
	ChannelTitle string
	ThumbnailURL string
}

// Details carries the provider-side detail record for a video. Duration is
// the provider's raw token (e.g. "PT4M30S"); ParseDuration converts it.
type Details struct {
	ID        string
	Duration  string
	ViewCount int64
	LikeCount int64
}

// Candidate is a fully hydrated search-result video. Candidates are never
// persisted; only the winner's ID and thumbnail are written to the catalog.
type Candidate struct {
	ID              string
	Title           string
	ChannelTitle    string
	ThumbnailURL    string
	DurationSeconds int
	ViewCount       int64
	LikeCount       int64
}

// ScoredVideo pairs a candidate with its score. Scores at or below zero
// mean the candidate was rejected.
type ScoredVideo struct {
	Candidate Candidate `json:"candidate"`
	Score     int       `json:"score"`
}

// ErrQuotaExceeded indicates the provider refused the call because the
// API quota is exhausted. It is terminal for the current pass.
var ErrQuotaExceeded = errors.New("video provider quota exceeded")

// Provider is the external video search service.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
	VideoDetails(ctx context.Context, ids []string) ([]Details, error)
}
