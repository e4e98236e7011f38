package video

import (
	"context"
	"errors"
	"log"
	"time"

	"example.com/exerciseresolver/internal/domain"
)

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) SelectorOption {
	return func(s *Selector) { s.logger = l }
}

// WithMaxResults bounds the result count requested per search call.
func WithMaxResults(n int) SelectorOption {
	return func(s *Selector) { s.maxResults = n }
}

// WithCallDelay sets the fixed pause inserted between provider calls to
// stay under the provider's rate limits. Zero disables the pause.
func WithCallDelay(d time.Duration) SelectorOption {
	return func(s *Selector) { s.callDelay = d }
}

// Selector drives the query-generate, search, detail-fetch, score loop and
// keeps the best candidate found so far.
type Selector struct {
	provider   Provider
	maxResults int
	callDelay  time.Duration
	logger     *log.Logger
}

// NewSelector constructs a Selector over the provider.
func NewSelector(provider Provider, opts ...SelectorOption) *Selector {
	s := &Selector{
		provider:   provider,
		maxResults: 5,
		callDelay:  500 * time.Millisecond,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectVideo finds the best instructional video for an exercise by trying
// the generated queries in order. Network failures on a query are logged
// and treated as that query producing no results; they never abort the
// remaining queries. A quota error stops the search immediately and is
// returned alongside whatever best candidate was already found. Once the
// running best exceeds EarlyExitScore, later queries are skipped.
//
// A nil result with a nil error means no acceptable video exists.
func (s *Selector) SelectVideo(ctx context.Context, name string, category domain.Category) (*ScoredVideo, error) {
	var best *ScoredVideo
	for i, query := range Queries(name, category) {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return best, err
			}
		}

		waveBest, err := s.searchWave(ctx, query, category)
		if err != nil {
			if errors.Is(err, ErrQuotaExceeded) || ctx.Err() != nil {
				return betterOf(best, waveBest), err
			}
			s.logger.Printf("video search failed (query=%q): %v", query, err)
			continue
		}
		best = betterOf(best, waveBest)

		if best != nil && best.Score > EarlyExitScore {
			break
		}
	}
	return best, nil
}

// SelectFromQuery runs a single search wave for an explicit query and only
// accepts a candidate scoring above AcceptScore; there are no fallback
// queries to soften a weak result.
func (s *Selector) SelectFromQuery(ctx context.Context, query string, category domain.Category) (*ScoredVideo, error) {
	best, err := s.searchWave(ctx, query, category)
	if err != nil {
		return nil, err
	}
	if best == nil || best.Score <= AcceptScore {
		return nil, nil
	}
	return best, nil
}

// searchWave issues one search call, hydrates the results with detail
// records, scores every candidate and returns the wave's best.
func (s *Selector) searchWave(ctx context.Context, query string, category domain.Category) (*ScoredVideo, error) {
	results, err := s.provider.Search(ctx, query, s.maxResults)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	if err := s.pause(ctx); err != nil {
		return nil, err
	}

	ids := make([]string, len(results))
	for i, result := range results {
		ids[i] = result.ID
	}
	details, err := s.provider.VideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}
	detailsByID := make(map[string]Details, len(details))
	for _, detail := range details {
		detailsByID[detail.ID] = detail
	}

	var best *ScoredVideo
	for _, result := range results {
		detail := detailsByID[result.ID]
		candidate := Candidate{
			ID:              result.ID,
			Title:           result.Title,
			ChannelTitle:    result.ChannelTitle,
			ThumbnailURL:    result.ThumbnailURL,
			DurationSeconds: ParseDuration(detail.Duration),
			ViewCount:       detail.ViewCount,
			LikeCount:       detail.LikeCount,
		}
		score := Score(candidate, category)
		if score <= 0 {
			continue
		}
		if best == nil || score > best.Score {
			best = &ScoredVideo{Candidate: candidate, Score: score}
		}
	}
	return best, nil
}

func (s *Selector) pause(ctx context.Context) error {
	if s.callDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.callDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func betterOf(a, b *ScoredVideo) *ScoredVideo {
	if a == nil {
		return b
	}
	if b == nil || a.Score >= b.Score {
		return a
	}
	return b
}
