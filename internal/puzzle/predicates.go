package puzzle

import (
	"fmt"
	"maps"
	"slices"

	"crosswarped.com/hexword"
)

// predicates are the named constraints a puzzle file can use instead of a
// pattern. A predicate judges prefixes as well as finished lines, so each
// one must hold for every prefix of a string it accepts.
var predicates = map[string]hexword.Predicate{
	// (.)\1 on the first two letters.
	"two_same_chars": func(s string) bool {
		return len(s) < 2 || s[0] == s[1]
	},
	"all_same_chars": func(s string) bool {
		for i := 1; i < len(s); i++ {
			if s[i] != s[0] {
				return false
			}
		}
		return true
	},
	"distinct_chars": func(s string) bool {
		var seen [256]bool
		for i := range len(s) {
			if seen[s[i]] {
				return false
			}
			seen[s[i]] = true
		}
		return true
	},
	"ascending": func(s string) bool {
		for i := 1; i < len(s); i++ {
			if s[i] < s[i-1] {
				return false
			}
		}
		return true
	},
}

// Lookup returns the named predicate as a search.
func Lookup(name string) (*hexword.Function, error) {
	f, ok := predicates[name]
	if !ok {
		return nil, fmt.Errorf("unknown predicate %q", name)
	}
	return hexword.NewFunction(name, f), nil
}

// PredicateNames lists the registered predicates in sorted order.
func PredicateNames() []string {
	return slices.Sorted(maps.Keys(predicates))
}
