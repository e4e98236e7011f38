// Package domain holds the canonical exercise model and the name-resolution
// logic that maps planner-produced exercise mentions onto catalog entries.
package domain

import (
	"context"
	"errors"
	"time"
)

// Category is the movement context assigned to an exercise. It gates entity
// matching and selects the search/scoring heuristics on the video side.
type Category string

const (
	CategoryFlexibility Category = "flexibility"
	CategoryWarmup      Category = "warmup"
	CategoryCardio      Category = "cardio"
	CategoryStrength    Category = "strength"
	CategoryGeneral     Category = "general"
)

// CanonicalExercise is the deduplicated catalog record a mention resolves to.
// ID and Slug are assigned at creation and never change afterwards.
type CanonicalExercise struct {
	ID           int       `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	VideoID      string    `json:"video_id,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Mention is a raw, unresolved exercise name plus the plan slot it came from.
// Mentions are transient; they exist only for the duration of a pass.
type Mention struct {
	Name   string `json:"name"`
	PlanID string `json:"plan_id,omitempty"`
	Slot   int    `json:"slot,omitempty"`
	// ExerciseID is non-zero when the planner believes it already knows the
	// catalog entry for this mention.
	ExerciseID int `json:"exercise_id,omitempty"`
}

// MatchCandidate pairs a catalog entry with its match score (0-100).
type MatchCandidate struct {
	Exercise CanonicalExercise
	Score    int
}

// NewExercise carries the fields needed to create a catalog entry.
type NewExercise struct {
	Slug     string
	Name     string
	Category Category
}

// ExercisePatch describes a partial update. Nil fields are left untouched.
type ExercisePatch struct {
	Name         *string
	VideoID      *string
	ThumbnailURL *string
}

var (
	// ErrExerciseNotFound indicates the catalog entry does not exist.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrDuplicateSlug indicates a creation collided with an existing slug.
	ErrDuplicateSlug = errors.New("duplicate exercise slug")
)

// Store exposes catalog persistence. Implementations must uphold slug
// uniqueness and return slug-ordered lists so matching is deterministic.
type Store interface {
	ListExercises(ctx context.Context) ([]CanonicalExercise, error)
	GetExercise(ctx context.Context, id int) (*CanonicalExercise, error)
	CreateExercise(ctx context.Context, fields NewExercise) (*CanonicalExercise, error)
	UpdateExercise(ctx context.Context, id int, patch ExercisePatch) (*CanonicalExercise, error)
}
