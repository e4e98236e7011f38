// Package pipeline runs batch resolution and video-population passes over
// planner-produced exercise mentions.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/events"
	"example.com/exerciseresolver/internal/observability"
	"example.com/exerciseresolver/internal/publisher"
	"example.com/exerciseresolver/internal/video"
)

const maxSlugSuffix = 5

// Report tallies one pass. Individual item failures never fail the pass;
// only quota exhaustion aborts it early.
type Report struct {
	PassID         string `json:"pass_id"`
	Matched        int    `json:"matched"`
	Created        int    `json:"created"`
	Redirected     int    `json:"redirected"`
	Failed         int    `json:"failed"`
	VideosSelected int    `json:"videos_selected"`
	VideosMissing  int    `json:"videos_missing"`
	QuotaExhausted bool   `json:"quota_exhausted"`
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithBatchSize bounds how many items one wave of workers processes.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithBatchDelay sets the pause between video-population batches, keeping
// the pass under the provider's quota.
func WithBatchDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.batchDelay = d }
}

// WithPublisher sets the event publisher resolution outcomes are emitted to.
func WithPublisher(pub publisher.Publisher) Option {
	return func(p *Pipeline) {
		if pub != nil {
			p.publisher = pub
		}
	}
}

// Pipeline wires the resolver and the video selector into the batch
// operations callers actually invoke.
type Pipeline struct {
	store      domain.Store
	resolver   *domain.Resolver
	selector   *video.Selector
	publisher  publisher.Publisher
	batchSize  int
	batchDelay time.Duration
	logger     *log.Logger

	// createMu serializes the miss/create path across all passes so
	// concurrent workers cannot race the same slug; matched lookups stay
	// lock-free.
	createMu sync.Mutex
}

// New constructs a Pipeline.
func New(store domain.Store, resolver *domain.Resolver, selector *video.Selector, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:      store,
		resolver:   resolver,
		selector:   selector,
		publisher:  publisher.Noop{},
		batchSize:  5,
		batchDelay: 2 * time.Second,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// passState tracks what one pass created. It is pass-local: concurrent
// passes each grow their own created list against their own snapshot.
type passState struct {
	snapshot []domain.CanonicalExercise

	mu      sync.RWMutex
	created []domain.CanonicalExercise
}

// view is the pass-start snapshot plus everything created during this
// pass, so repeated mentions of a new exercise converge on one entry.
func (ps *passState) view() []domain.CanonicalExercise {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	out := make([]domain.CanonicalExercise, 0, len(ps.snapshot)+len(ps.created))
	out = append(out, ps.snapshot...)
	out = append(out, ps.created...)
	return out
}

func (ps *passState) add(exercise domain.CanonicalExercise) {
	ps.mu.Lock()
	ps.created = append(ps.created, exercise)
	ps.mu.Unlock()
}

// ResolveMentions loads a catalog snapshot and resolves every mention
// against it, creating catalog entries for misses. The returned map holds
// an entry for every mention that resolved; failed mentions are counted in
// the report instead.
func (p *Pipeline) ResolveMentions(ctx context.Context, mentions []domain.Mention) (map[domain.Mention]domain.CanonicalExercise, *Report, error) {
	snapshot, err := p.store.ListExercises(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	return p.ResolveMentionsSnapshot(ctx, mentions, snapshot)
}

// ResolveMentionsSnapshot resolves mentions against a caller-provided
// catalog snapshot. The snapshot is taken once per pass; lookups never
// re-fetch the catalog mid-pass.
func (p *Pipeline) ResolveMentionsSnapshot(ctx context.Context, mentions []domain.Mention, snapshot []domain.CanonicalExercise) (map[domain.Mention]domain.CanonicalExercise, *Report, error) {
	report := &Report{PassID: uuid.NewString()}
	resolved := make(map[domain.Mention]domain.CanonicalExercise, len(mentions))
	pass := &passState{snapshot: snapshot}

	var mu sync.Mutex
	for start := 0; start < len(mentions); start += p.batchSize {
		end := start + p.batchSize
		if end > len(mentions) {
			end = len(mentions)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, mention := range mentions[start:end] {
			mention := mention
			g.Go(func() error {
				res, err := p.resolveOne(gctx, mention, pass)

				mu.Lock()
				if err != nil {
					report.Failed++
					recordResolution("failed")
					p.logger.Printf("mention %q failed: %v", mention.Name, err)
					mu.Unlock()
					return nil
				}
				resolved[mention] = res.Exercise
				switch {
				case res.Created:
					report.Created++
					recordResolution("created")
				case res.Redirected:
					report.Redirected++
					recordResolution("redirected")
				default:
					report.Matched++
					recordResolution("matched")
				}
				mu.Unlock()

				p.publishResolved(gctx, mention, res)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return resolved, report, err
		}
		if ctx.Err() != nil {
			return resolved, report, ctx.Err()
		}
	}

	observability.RecordPass(time.Now().UTC())
	return resolved, report, nil
}

// resolveOne resolves a single mention. The fast path matches against the
// pass view without the creation lock; misses retry under it so two
// workers inventing the same exercise converge on one entry.
func (p *Pipeline) resolveOne(ctx context.Context, mention domain.Mention, pass *passState) (domain.Resolution, error) {
	if candidate := domain.Match(mention.Name, pass.view()); candidate != nil {
		return p.resolver.Resolve(ctx, mention, pass.view())
	}

	p.createMu.Lock()
	defer p.createMu.Unlock()

	res, err := p.resolver.Resolve(ctx, mention, pass.view())
	if errors.Is(err, domain.ErrDuplicateSlug) {
		res, err = p.createWithSuffix(ctx, mention)
	}
	if err != nil {
		return domain.Resolution{}, err
	}
	if res.Created {
		pass.add(res.Exercise)
		observability.RecordCatalogWrite(res.Exercise.CreatedAt)
	}
	return res, nil
}

// publishResolved emits an exercise.resolved event for the outcome.
// Publishing is best-effort: a broker failure is logged, never failing the
// mention it describes.
func (p *Pipeline) publishResolved(ctx context.Context, mention domain.Mention, res domain.Resolution) {
	evt := events.ExerciseResolved{
		PlanID:      mention.PlanID,
		MentionName: mention.Name,
		ExerciseID:  res.Exercise.ID,
		Slug:        res.Exercise.Slug,
		Name:        res.Exercise.Name,
		Category:    string(res.Exercise.Category),
		Score:       res.Score,
		Created:     res.Created,
		Redirected:  res.Redirected,
		ResolvedAt:  time.Now().UTC(),
	}
	if err := p.publisher.PublishExerciseResolved(ctx, evt); err != nil {
		p.logger.Printf("publish exercise.resolved for %q failed: %v", mention.Name, err)
	}
}

// createWithSuffix retries creation with numeric slug suffixes after a
// collision. The base slug is taken: another worker or a previous pass got
// there with a name the matcher does not consider equivalent.
func (p *Pipeline) createWithSuffix(ctx context.Context, mention domain.Mention) (domain.Resolution, error) {
	base := domain.Slugify(mention.Name)
	for i := 2; i <= maxSlugSuffix; i++ {
		created, err := p.store.CreateExercise(ctx, domain.NewExercise{
			Slug:     fmt.Sprintf("%s-%d", base, i),
			Name:     mention.Name,
			Category: domain.CategoryGeneral,
		})
		if err == nil {
			return domain.Resolution{Exercise: *created, Created: true}, nil
		}
		if !errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.Resolution{}, err
		}
	}
	return domain.Resolution{}, fmt.Errorf("%w: %s (suffixes exhausted)", domain.ErrDuplicateSlug, base)
}
