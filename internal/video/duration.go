package video

import (
	"regexp"
	"strconv"
	"strings"
)

// Accepts ISO-8601 compact durations ("PT4M30S") as well as the bare
// "4M30S" form; every unit field is optional.
var durationPattern = regexp.MustCompile(`^(?:PT?)?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts a provider duration token to seconds. It never
// fails: malformed or empty tokens return 0.
func ParseDuration(token string) int {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return 0
	}
	groups := durationPattern.FindStringSubmatch(token)
	if groups == nil {
		return 0
	}
	hours := atoiOrZero(groups[1])
	minutes := atoiOrZero(groups[2])
	seconds := atoiOrZero(groups[3])
	return hours*3600 + minutes*60 + seconds
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
