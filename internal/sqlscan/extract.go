// Package sqlscan locates logical table names in SQL text and rewrites them,
// without depending on a full SQL parser.
//
// It is a tolerant lexical scanner: queries are split into statements, the
// token following each FROM or JOIN is captured as a table reference, and a
// small set of known false-positive sources (text-extraction function calls,
// WITH-clause CTE names) is explicitly neutralized. Malformed SQL never
// produces an error, only a possibly incomplete result.
//
// Example usage:
//
//	names := sqlscan.ExtractTableNames("SELECT * FROM prices p JOIN meta.symbols s ON p.sym = s.sym")
//	// names == {"prices", "symbols"}
package sqlscan

import (
	"regexp"
	"strings"
)

var (
	// tableRefPattern captures the token following FROM or JOIN, up to the
	// next whitespace, comma, or parenthesis. Subqueries are skipped
	// naturally because '(' cannot start a capture.
	tableRefPattern = regexp.MustCompile(`(?i)\bFROM\s+([^\s(),]+)|\bJOIN\s+([^\s(),]+)`)

	// cteNamePattern matches `<identifier> AS (` as found in WITH clauses.
	cteNamePattern = regexp.MustCompile(`(?i)\b(\w+)\s*AS\s*\(`)

	// textFuncPattern marks calls whose argument list may legally contain a
	// bare FROM keyword, e.g. SUBSTRING(x FROM 1 FOR 2).
	textFuncPattern = regexp.MustCompile(`(?i)\b(substring|extract)\s*\(`)

	quoteStripper = strings.NewReplacer(`"`, "", "`", "", `'`, "", `;`, "")
)

// ExtractTableNames scans a query and returns the set of distinct logical
// table names it references. Namespace qualifiers are dropped (only the last
// dot-separated segment is kept), quoting characters are stripped, and names
// defined as CTEs in any statement's WITH clause are excluded from the
// result.
//
// The CTE exclusion is whole-name: a name defined as a CTE anywhere in the
// query is excluded even in statements where it refers to a real table.
//
// The returned set has no defined iteration order. Queries with no FROM or
// JOIN yield an empty set, never an error.
func ExtractTableNames(sql string) map[string]struct{} {
	names := make(map[string]struct{})
	ctes := make(map[string]struct{})

	for _, stmt := range SplitStatements(sql) {
		text := neutralizeTextFunctions(stmt)

		for _, m := range tableRefPattern.FindAllStringSubmatch(text, -1) {
			for _, ref := range m[1:] {
				if ref == "" {
					continue
				}
				parts := strings.Split(ref, ".")
				name := quoteStripper.Replace(parts[len(parts)-1])
				if name != "" {
					names[name] = struct{}{}
				}
			}
		}

		if strings.Contains(strings.ToLower(text), "with") {
			for _, m := range cteNamePattern.FindAllStringSubmatch(text, -1) {
				ctes[m[1]] = struct{}{}
			}
		}
	}

	for cte := range ctes {
		delete(names, cte)
	}

	return names
}

// neutralizeTextFunctions removes every substring/extract call, including
// its full parenthesized argument list with nested parentheses, so the FROM
// keyword inside such calls cannot be mistaken for a table introducer.
func neutralizeTextFunctions(s string) string {
	for {
		loc := textFuncPattern.FindStringIndex(s)
		if loc == nil {
			return s
		}
		end := matchingParen(s, loc[1]-1)
		if end < 0 {
			// Unbalanced call: everything to the end belongs to it.
			return s[:loc[0]]
		}
		s = s[:loc[0]] + s[end+1:]
	}
}

// matchingParen returns the index of the ')' closing the '(' at open, or -1
// if the parentheses are unbalanced.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
