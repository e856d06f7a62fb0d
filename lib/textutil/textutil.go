package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a player name and drops every whitespace, the
// site pads names with non-breaking spaces inconsistently.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "\u00a0", " ")
	return whitespaceRegex.ReplaceAllString(name, "")
}

// MatchName reports whether any of the matchers is part of the normalized
// name, an empty matcher list matches everything.
func MatchName(name string, matchers []string) bool {
	if len(matchers) == 0 {
		return true
	}
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, NormalizeName(m)) {
			return true
		}
	}
	return false
}
