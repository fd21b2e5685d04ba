package game

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s for comparisons.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// MatchesName reports whether str equals name or one of the aliases, ignoring case.
func MatchesName(name string, aliases []string, str string) bool {
	target := Fold(str)
	if target == "" {
		return false
	}
	if Fold(name) == target {
		return true
	}
	for _, alias := range aliases {
		if Fold(alias) == target {
			return true
		}
	}
	return false
}
