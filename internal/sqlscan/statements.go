package sqlscan

import "strings"

// SplitStatements splits a query into its `;`-separated statements. The
// splitter is a small tokenizer, not a grammar: it only knows enough to
// avoid splitting inside string literals, quoted identifiers, and comments.
// Empty statements are dropped; the trailing semicolon is not included.
func SplitStatements(sql string) []string {
	var stmts []string
	var b strings.Builder
	var quote byte

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			stmts = append(stmts, s)
		}
		b.Reset()
	}

	i, n := 0, len(sql)
	for i < n {
		c := sql[i]

		if quote != 0 {
			b.WriteByte(c)
			if c == quote {
				quote = 0
			}
			i++
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			b.WriteByte(c)
			i++
		case c == '-' && i+1 < n && sql[i+1] == '-':
			j := i
			for j < n && sql[j] != '\n' {
				j++
			}
			b.WriteString(sql[i:j])
			i = j
		case c == '/' && i+1 < n && sql[i+1] == '*':
			j := i + 2
			for j+1 < n && !(sql[j] == '*' && sql[j+1] == '/') {
				j++
			}
			if j+1 < n {
				j += 2
			} else {
				j = n
			}
			b.WriteString(sql[i:j])
			i = j
		case c == ';':
			flush()
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	flush()

	return stmts
}
