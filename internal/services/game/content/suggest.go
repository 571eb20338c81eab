package content

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to input when it is near enough to
// be a likely typo.
func Suggest(input string, candidates []string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	limit := len(input) / 3
	if limit < 2 {
		limit = 2
	}
	best := ""
	bestDistance := limit + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(input, strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	if best == "" || best == input {
		return "", false
	}
	return best, true
}
