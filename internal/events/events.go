// Package events defines the cross-service event payloads the resolver
// consumes.
package events

import "time"

// PlannedExercise is one slot of a generated workout plan. ExerciseID is
// set when the planner believes the slot already maps to a catalog entry.
type PlannedExercise struct {
	Name       string `json:"name"`
	Slot       int    `json:"slot"`
	ExerciseID int    `json:"exercise_id,omitempty"`
}

// PlanGenerated is emitted when the AI workout planner finishes a plan.
// Exercise names in it are free-form and need resolution.
type PlanGenerated struct {
	PlanID      string            `json:"plan_id"`
	TenantID    string            `json:"tenant_id"`
	UserID      string            `json:"user_id"`
	Exercises   []PlannedExercise `json:"exercises"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ExerciseResolved is emitted once per mention a resolution pass settles,
// whether it matched an existing catalog entry or created a new one.
type ExerciseResolved struct {
	PlanID      string    `json:"plan_id,omitempty"`
	MentionName string    `json:"mention_name"`
	ExerciseID  int       `json:"exercise_id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Score       int       `json:"score"`
	Created     bool      `json:"created"`
	Redirected  bool      `json:"redirected"`
	ResolvedAt  time.Time `json:"resolved_at"`
}
