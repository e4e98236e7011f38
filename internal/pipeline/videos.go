package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/observability"
	"example.com/exerciseresolver/internal/video"
)

// PopulateVideos selects the best instructional video for each exercise
// and writes the winner's id and thumbnail onto the catalog entry. The
// returned map has an entry per exercise id: nil means no acceptable video
// was found, which is a result, not an error.
//
// Exercises are processed in batches with a fixed pause between batches to
// stay under provider quota. A quota refusal aborts the remaining work; the
// results computed so far are returned together with the quota error.
func (p *Pipeline) PopulateVideos(ctx context.Context, exercises []domain.CanonicalExercise) (map[int]*video.ScoredVideo, *Report, error) {
	report := &Report{PassID: uuid.NewString()}
	results := make(map[int]*video.ScoredVideo, len(exercises))
	var mu sync.Mutex

	for start := 0; start < len(exercises); start += p.batchSize {
		end := start + p.batchSize
		if end > len(exercises) {
			end = len(exercises)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, exercise := range exercises[start:end] {
			exercise := exercise
			g.Go(func() error {
				selected, err := p.selector.SelectVideo(gctx, exercise.Name, exercise.Category)

				mu.Lock()
				if selected != nil {
					results[exercise.ID] = selected
					report.VideosSelected++
					recordVideoSelected(exercise.Category)
				} else if err == nil {
					results[exercise.ID] = nil
					report.VideosMissing++
				}
				mu.Unlock()

				if err != nil {
					if errors.Is(err, video.ErrQuotaExceeded) {
						return err
					}
					// Cancellation of the whole wave; anything else was
					// already absorbed per query by the selector.
					return err
				}

				if selected != nil {
					if uerr := p.writeVideo(ctx, exercise.ID, selected); uerr != nil {
						mu.Lock()
						report.Failed++
						mu.Unlock()
						p.logger.Printf("persist video for exercise %d failed: %v", exercise.ID, uerr)
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			if errors.Is(err, video.ErrQuotaExceeded) {
				report.QuotaExhausted = true
				recordQuotaExhausted()
				p.logger.Printf("video pass %s aborted: provider quota exhausted", report.PassID)
				return results, report, err
			}
			return results, report, err
		}

		if end < len(exercises) {
			if err := p.sleep(ctx); err != nil {
				return results, report, err
			}
		}
	}

	observability.RecordPass(time.Now().UTC())
	return results, report, nil
}

// Run is the full pass: resolve the mentions, then populate videos for
// every resolved exercise that does not have one yet. The two reports are
// merged under the resolution pass id.
func (p *Pipeline) Run(ctx context.Context, mentions []domain.Mention) (*Report, error) {
	resolved, report, err := p.ResolveMentions(ctx, mentions)
	if err != nil {
		return report, err
	}

	pending := make([]domain.CanonicalExercise, 0, len(resolved))
	seen := make(map[int]struct{}, len(resolved))
	for _, exercise := range resolved {
		if _, ok := seen[exercise.ID]; ok {
			continue
		}
		seen[exercise.ID] = struct{}{}
		if exercise.VideoID == "" {
			pending = append(pending, exercise)
		}
	}

	_, videoReport, err := p.PopulateVideos(ctx, pending)
	report.VideosSelected = videoReport.VideosSelected
	report.VideosMissing = videoReport.VideosMissing
	report.Failed += videoReport.Failed
	report.QuotaExhausted = videoReport.QuotaExhausted
	return report, err
}

func (p *Pipeline) writeVideo(ctx context.Context, id int, selected *video.ScoredVideo) error {
	videoID := selected.Candidate.ID
	thumbnail := selected.Candidate.ThumbnailURL
	patch := domain.ExercisePatch{VideoID: &videoID}
	if thumbnail != "" {
		patch.ThumbnailURL = &thumbnail
	}
	updated, err := p.store.UpdateExercise(ctx, id, patch)
	if err != nil {
		return err
	}
	observability.RecordCatalogWrite(updated.UpdatedAt)
	return nil
}

func (p *Pipeline) sleep(ctx context.Context) error {
	if p.batchDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.batchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
