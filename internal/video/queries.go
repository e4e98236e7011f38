package video

import (
	"fmt"

	"example.com/exerciseresolver/internal/domain"
)

// Per-category query templates, in the order they are tried. Searching
// stops early once a query yields a good enough video, so the most
// specific phrasings come first.
var queryTemplates = map[domain.Category][]string{
	domain.CategoryStrength: {
		"%s exercise form",
		"%s proper technique",
		"how to do %s",
		"%s tutorial",
		"%s demonstration",
	},
	domain.CategoryFlexibility: {
		"%s stretch tutorial",
		"how to do %s",
		"%s flexibility routine",
		"%s guided stretch",
	},
	domain.CategoryCardio: {
		"%s cardio workout",
		"how to do %s",
		"%s exercise tutorial",
		"%s technique",
	},
	domain.CategoryWarmup: {
		"%s warm up exercise",
		"how to do %s",
		"%s mobility drill",
		"%s demonstration",
	},
	domain.CategoryGeneral: {
		"%s exercise",
		"%s tutorial",
	},
}

// Queries builds the ordered search phrases for an exercise name and
// category. Unknown categories fall back to the general templates.
func Queries(name string, category domain.Category) []string {
	templates, ok := queryTemplates[category]
	if !ok {
		templates = queryTemplates[domain.CategoryGeneral]
	}
	queries := make([]string, len(templates))
	for i, template := range templates {
		queries[i] = fmt.Sprintf(template, name)
	}
	return queries
}
