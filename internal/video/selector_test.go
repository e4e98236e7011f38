package video

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/exerciseresolver/internal/domain"
)

// fakeProvider replays canned responses keyed by query and records the
// order of provider calls.
type fakeProvider struct {
	results   map[string][]SearchResult
	details   map[string]Details
	searchErr map[string]error
	queries   []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		results:   map[string][]SearchResult{},
		details:   map[string]Details{},
		searchErr: map[string]error{},
	}
}

func (p *fakeProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	p.queries = append(p.queries, query)
	if err := p.searchErr[query]; err != nil {
		return nil, err
	}
	return p.results[query], nil
}

func (p *fakeProvider) VideoDetails(ctx context.Context, ids []string) ([]Details, error) {
	out := make([]Details, 0, len(ids))
	for _, id := range ids {
		if detail, ok := p.details[id]; ok {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (p *fakeProvider) add(query, id, title, duration string, views, likes int64) {
	p.results[query] = append(p.results[query], SearchResult{ID: id, Title: title, ThumbnailURL: "https://img/" + id})
	p.details[id] = Details{ID: id, Duration: duration, ViewCount: views, LikeCount: likes}
}

func newTestSelector(p Provider) *Selector {
	return NewSelector(p,
		WithCallDelay(0),
		WithLogger(log.New(io.Discard, "", 0)),
	)
}

func TestSelectVideoEarlyExit(t *testing.T) {
	provider := newFakeProvider()
	// First query already yields a strong candidate; no further queries run.
	provider.add("Goblet Squat exercise form", "v1", "Goblet Squat Form Tutorial", "PT2M", 50000, 500)

	selector := newTestSelector(provider)
	got, err := selector.SelectVideo(context.Background(), "Goblet Squat", domain.CategoryStrength)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "v1", got.Candidate.ID)
	require.Greater(t, got.Score, EarlyExitScore)
	require.Equal(t, []string{"Goblet Squat exercise form"}, provider.queries)
}

func TestSelectVideoSkipsFailedQueries(t *testing.T) {
	provider := newFakeProvider()
	provider.searchErr["Goblet Squat exercise form"] = errors.New("connection reset")
	provider.add("Goblet Squat proper technique", "v2", "Goblet Squat Technique", "PT90S", 20000, 300)

	selector := newTestSelector(provider)
	got, err := selector.SelectVideo(context.Background(), "Goblet Squat", domain.CategoryStrength)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "v2", got.Candidate.ID)
}

func TestSelectVideoQuotaReturnsPartialBest(t *testing.T) {
	provider := newFakeProvider()
	// A weak first hit keeps the search going; the next query trips quota.
	provider.add("Goblet Squat exercise form", "v1", "random clip", "PT20S", 0, 0)
	provider.searchErr["Goblet Squat proper technique"] = ErrQuotaExceeded

	selector := newTestSelector(provider)
	got, err := selector.SelectVideo(context.Background(), "Goblet Squat", domain.CategoryStrength)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.NotNil(t, got)
	require.Equal(t, "v1", got.Candidate.ID)
}

// cancellingProvider cancels the supplied context once a given number of
// search calls have been served.
type cancellingProvider struct {
	*fakeProvider
	cancel      context.CancelFunc
	cancelAfter int
	calls       int
}

func (p *cancellingProvider) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	p.calls++
	if p.calls > p.cancelAfter {
		p.cancel()
		return nil, ctx.Err()
	}
	return p.fakeProvider.Search(ctx, query, maxResults)
}

func TestSelectVideoCancellationReturnsPartialBest(t *testing.T) {
	inner := newFakeProvider()
	// The first query yields only a weak candidate, so the search keeps
	// going; the second query is cut off by cancellation.
	inner.add("Goblet Squat exercise form", "v1", "random clip", "PT20S", 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	provider := &cancellingProvider{fakeProvider: inner, cancel: cancel, cancelAfter: 1}

	selector := newTestSelector(provider)
	got, err := selector.SelectVideo(ctx, "Goblet Squat", domain.CategoryStrength)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, got)
	require.Equal(t, "v1", got.Candidate.ID)
	require.Equal(t, 2, provider.calls)
}

func TestSelectVideoNoAcceptableCandidate(t *testing.T) {
	provider := newFakeProvider()
	// Every candidate is over the duration ceiling.
	for _, query := range Queries("Goblet Squat", domain.CategoryStrength) {
		provider.add(query, "long-"+query, "Goblet Squat Marathon", "PT20M", 1000000, 9000)
	}

	selector := newTestSelector(provider)
	got, err := selector.SelectVideo(context.Background(), "Goblet Squat", domain.CategoryStrength)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Len(t, provider.queries, len(Queries("Goblet Squat", domain.CategoryStrength)))
}

func TestSelectFromQueryRequiresAcceptScore(t *testing.T) {
	provider := newFakeProvider()
	// 30 duration + 25 form + 15 tutorial = 70, not strictly above AcceptScore.
	provider.add("custom squat query", "v1", "Squat Form Tutorial Clip", "PT2M", 100, 10)

	selector := newTestSelector(provider)
	got, err := selector.SelectFromQuery(context.Background(), "custom squat query", domain.CategoryStrength)
	require.NoError(t, err)
	require.Nil(t, got)

	provider2 := newFakeProvider()
	provider2.add("custom squat query", "v2", "Squat Form Tutorial Clip", "PT2M", 20000, 500)

	selector2 := newTestSelector(provider2)
	got, err = selector2.SelectFromQuery(context.Background(), "custom squat query", domain.CategoryStrength)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "v2", got.Candidate.ID)
	require.Equal(t, 85, got.Score)
}
