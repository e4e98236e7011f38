package domain

import "strings"

// MatchThreshold is the minimum score at which a candidate counts as a
// confident match rather than noise.
const MatchThreshold = 70

// movementContext captures the coarse movement signals used to gate word
// overlap. A breathing mention must never match a strength entry no matter
// how many words they share.
type movementContext struct {
	breathing bool
	stretch   bool
	cardio    bool
	circles   bool
}

var cardioSignals = []string{"treadmill", "jog", "run", "bike", "cycling", "cardio", "walk"}

func contextOf(normalized string) movementContext {
	ctx := movementContext{
		breathing: strings.Contains(normalized, "breath"),
		stretch:   strings.Contains(normalized, "stretch"),
		circles:   strings.Contains(normalized, "arm") || strings.Contains(normalized, "circle"),
	}
	for _, signal := range cardioSignals {
		if strings.Contains(normalized, signal) {
			ctx.cardio = true
			break
		}
	}
	return ctx
}

// Match scores rawName against every catalog entry independently and returns
// the best candidate when its score reaches MatchThreshold, nil otherwise.
// Equal scores keep the first-seen entry; catalog order is the slug order
// the Store contract guarantees.
func Match(rawName string, catalog []CanonicalExercise) *MatchCandidate {
	var best *MatchCandidate
	for _, exercise := range catalog {
		score := matchScore(rawName, exercise.Name)
		if best == nil || score > best.Score {
			best = &MatchCandidate{Exercise: exercise, Score: score}
		}
	}
	if best == nil || best.Score < MatchThreshold {
		return nil
	}
	return best
}

// matchScore rates how well a candidate catalog name stands in for the
// target mention: 100 exact, 95 exact after normalization, otherwise a
// context-gated word-overlap band.
func matchScore(target, candidate string) int {
	if strings.EqualFold(strings.TrimSpace(target), strings.TrimSpace(candidate)) {
		return 100
	}

	normTarget := Normalize(target)
	normCandidate := Normalize(candidate)
	if normTarget != "" && normTarget == normCandidate {
		return 95
	}

	targetWords := matchWords(normTarget)
	candidateWords := matchWords(normCandidate)
	if len(targetWords) == 0 || len(candidateWords) == 0 {
		return 0
	}

	common := 0
	for word := range targetWords {
		if _, ok := candidateWords[word]; ok {
			common++
		}
	}
	longest := len(targetWords)
	if len(candidateWords) > longest {
		longest = len(candidateWords)
	}
	ratio := float64(common) / float64(longest)

	targetCtx := contextOf(normTarget)
	candidateCtx := contextOf(normCandidate)
	switch {
	case targetCtx.breathing && !candidateCtx.breathing:
		return 0
	case targetCtx.stretch && !candidateCtx.stretch:
		return 0
	case targetCtx.cardio && !candidateCtx.cardio:
		return 0
	case targetCtx.circles && !candidateCtx.circles && ratio < 0.5:
		return 0
	}

	switch {
	case ratio >= 0.8:
		return 85
	case ratio >= 0.6:
		return 75
	case ratio >= 0.4:
		return 60
	case ratio >= 0.2:
		return 40
	default:
		return 0
	}
}

// matchWords tokenizes a normalized name into the significant words used
// for overlap; short glue words (of, to, up) are dropped.
func matchWords(normalized string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(normalized) {
		if len(word) > 2 {
			words[word] = struct{}{}
		}
	}
	return words
}
