package video

import (
	"strings"

	"example.com/exerciseresolver/internal/domain"
)

const (
	// MaxDurationSeconds is a hard ceiling, not a penalty: anything longer
	// is rejected outright.
	MaxDurationSeconds = 300

	// EarlyExitScore is the score a running best must exceed before the
	// multi-query search stops trying further queries.
	EarlyExitScore = 40

	// AcceptScore is the score a candidate must exceed to be accepted in
	// single-shot contexts, where there are no further queries to fall
	// back on.
	AcceptScore = 70
)

type keywordBonus struct {
	keyword string
	points  int
}

var titleBonuses = map[domain.Category][]keywordBonus{
	domain.CategoryStrength: {
		{"form", 25}, {"technique", 25},
		{"exercise", 20}, {"workout", 20},
		{"tutorial", 15}, {"how to", 15},
		{"beginner", 10}, {"proper", 10},
	},
	domain.CategoryFlexibility: {
		{"stretch", 25},
		{"flexibility", 20}, {"yoga", 20},
		{"relax", 15}, {"breathing", 15},
		{"beginner", 10}, {"gentle", 10},
	},
	domain.CategoryCardio: {
		{"cardio", 25},
		{"workout", 20}, {"exercise", 20},
		{"tutorial", 15}, {"how to", 15},
		{"beginner", 10}, {"low impact", 10},
	},
	domain.CategoryWarmup: {
		{"warm up", 25}, {"warmup", 25},
		{"mobility", 20}, {"dynamic", 20},
		{"routine", 15}, {"drill", 15},
		{"form", 10}, {"tutorial", 10},
	},
	domain.CategoryGeneral: {
		{"exercise", 20},
		{"tutorial", 15}, {"how to", 15},
		{"workout", 10},
	},
}

// Score rates a candidate for a category. Candidates over the duration
// ceiling always score -1 regardless of any bonus. Everything else earns
// additive bonuses: a duration band, category title keywords, and
// popularity. There is no normalization across candidates.
func Score(candidate Candidate, category domain.Category) int {
	if candidate.DurationSeconds > MaxDurationSeconds {
		return -1
	}

	score := 0
	switch {
	case candidate.DurationSeconds >= 60:
		score += 30
	case candidate.DurationSeconds >= 30:
		score += 20
	default:
		score += 10
	}

	bonuses, ok := titleBonuses[category]
	if !ok {
		bonuses = titleBonuses[domain.CategoryGeneral]
	}
	title := strings.ToLower(candidate.Title)
	for _, bonus := range bonuses {
		if strings.Contains(title, bonus.keyword) {
			score += bonus.points
		}
	}

	if candidate.ViewCount > 10000 {
		score += 10
	}
	if candidate.LikeCount > 100 {
		score += 5
	}
	return score
}
