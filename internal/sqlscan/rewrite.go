package sqlscan

import (
	"regexp"
	"sort"
	"strings"
)

// Rewrite replaces every literal occurrence of each key of repl in query
// with the corresponding value, using a single combined-alternation pattern.
// Names are tried longest-first so overlapping names behave
// deterministically.
//
// Matching is literal, not identifier-boundary-aware: a name that is a
// substring of a longer unrelated token will be rewritten inside that token.
// Callers accept this in exchange for position-independent one-pass
// substitution.
func Rewrite(query string, repl map[string]string) string {
	if len(repl) == 0 {
		return query
	}

	names := make([]string, 0, len(repl))
	for name := range repl {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	pattern := regexp.MustCompile(strings.Join(quoted, "|"))

	return pattern.ReplaceAllStringFunc(query, func(m string) string {
		return repl[m]
	})
}
