package domain

import "strings"

// Classification rules are checked in fixed precedence order; the first
// matching rule wins. A name containing both "stretch" and "press" is
// flexibility, never strength.
var classifierRules = []struct {
	category Category
	keywords []string
}{
	{CategoryFlexibility, []string{"stretch", "breathing", "breath", "flexibility", "cooldown", "cool down", "relax"}},
	{CategoryWarmup, []string{"circle", "circles", "swing", "swings", "activation", "mobility", "warm", "dynamic"}},
	{CategoryCardio, []string{"treadmill", "jog", "run", "bike", "cycling", "cardio", "walk"}},
	{CategoryStrength, []string{"press", "squat", "curl", "row", "deadlift", "bench", "barbell", "dumbbell", "pull-up", "push-up", "band"}},
}

// Classify assigns a movement category to an exercise name. It is a pure
// total function; names matching no rule fall back to CategoryGeneral.
func Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
