// Package catalog provides an in-memory catalog store for local development
// and tests.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"example.com/exerciseresolver/internal/domain"
)

// MemoryStore keeps the exercise catalog in process memory. A single mutex
// serializes writes, which is what upholds slug uniqueness under
// concurrent resolution workers.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int
	exercises map[int]domain.CanonicalExercise
	bySlug    map[string]int
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		exercises: make(map[int]domain.CanonicalExercise),
		bySlug:    make(map[string]int),
	}
}

// ListExercises returns a slug-ordered snapshot of the catalog.
func (s *MemoryStore) ListExercises(ctx context.Context) ([]domain.CanonicalExercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CanonicalExercise, 0, len(s.exercises))
	for _, exercise := range s.exercises {
		out = append(out, exercise)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// GetExercise returns the entry with the given id.
func (s *MemoryStore) GetExercise(ctx context.Context, id int) (*domain.CanonicalExercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exercise, ok := s.exercises[id]
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	return &exercise, nil
}

// CreateExercise assigns the next id and inserts the entry. Slug collisions
// fail with domain.ErrDuplicateSlug.
func (s *MemoryStore) CreateExercise(ctx context.Context, fields domain.NewExercise) (*domain.CanonicalExercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySlug[fields.Slug]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, fields.Slug)
	}

	now := time.Now().UTC()
	exercise := domain.CanonicalExercise{
		ID:        s.nextID,
		Slug:      fields.Slug,
		Name:      fields.Name,
		Category:  fields.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.exercises[exercise.ID] = exercise
	s.bySlug[exercise.Slug] = exercise.ID
	return &exercise, nil
}

// UpdateExercise applies the non-nil patch fields.
func (s *MemoryStore) UpdateExercise(ctx context.Context, id int, patch domain.ExercisePatch) (*domain.CanonicalExercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercise, ok := s.exercises[id]
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	if patch.Name != nil {
		exercise.Name = *patch.Name
	}
	if patch.VideoID != nil {
		exercise.VideoID = *patch.VideoID
	}
	if patch.ThumbnailURL != nil {
		exercise.ThumbnailURL = *patch.ThumbnailURL
	}
	exercise.UpdatedAt = time.Now().UTC()
	s.exercises[id] = exercise
	return &exercise, nil
}

var _ domain.Store = (*MemoryStore)(nil)
