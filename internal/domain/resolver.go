package domain

import (
	"context"
	"log"
	"strings"
)

// Resolution is the outcome of resolving one mention.
type Resolution struct {
	Exercise CanonicalExercise `json:"exercise"`
	Score    int               `json:"score"`
	// Created is true when no acceptable match existed and a new catalog
	// entry was made.
	Created bool `json:"created"`
	// Redirected is true when the mention carried a catalog id that differs
	// from the matched entry; the caller should use the matched id instead
	// of creating a duplicate.
	Redirected bool `json:"redirected"`
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets a custom logger.
func WithResolverLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// Resolver orchestrates lookup-or-create against the catalog.
type Resolver struct {
	store  Store
	logger *log.Logger
}

// NewResolver constructs a Resolver backed by the provided store.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: store, logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a mention onto a canonical exercise using the supplied
// catalog snapshot. On a confident match it returns the matched entry,
// rewriting its display name to the mention's phrasing only when the
// mention already pointed at that entry. On a miss it creates a new entry.
//
// New entries start as CategoryGeneral; the creation path deliberately does
// not run the classifier, matching the behavior callers depend on. Creation
// can fail with ErrDuplicateSlug; retry policy belongs to the caller.
func (r *Resolver) Resolve(ctx context.Context, mention Mention, catalog []CanonicalExercise) (Resolution, error) {
	name := strings.TrimSpace(mention.Name)

	if candidate := Match(name, catalog); candidate != nil {
		res := Resolution{Exercise: candidate.Exercise, Score: candidate.Score}
		if mention.ExerciseID != 0 && mention.ExerciseID != candidate.Exercise.ID {
			res.Redirected = true
			r.logger.Printf("mention %q redirected from exercise %d to %d", name, mention.ExerciseID, candidate.Exercise.ID)
			return res, nil
		}
		if mention.ExerciseID == candidate.Exercise.ID && name != candidate.Exercise.Name {
			updated, err := r.store.UpdateExercise(ctx, candidate.Exercise.ID, ExercisePatch{Name: &name})
			if err != nil {
				return Resolution{}, err
			}
			res.Exercise = *updated
		}
		return res, nil
	}

	created, err := r.store.CreateExercise(ctx, NewExercise{
		Slug:     Slugify(name),
		Name:     name,
		Category: CategoryGeneral,
	})
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Exercise: *created, Created: true}, nil
}
