package sqlscan

import "strings"

// clauseKeywords are matched longest-first when reindenting. Multi-word
// entries rely on whitespace having been collapsed to single spaces.
var clauseKeywords = []string{
	"left outer join",
	"right outer join",
	"full outer join",
	"group by",
	"order by",
	"union all",
	"left join",
	"right join",
	"inner join",
	"cross join",
	"full join",
	"select",
	"having",
	"where",
	"union",
	"limit",
	"from",
	"join",
	"with",
}

// Normalize strips SQL comments and reindents the query into a canonical
// textual form with each major clause on its own line. It is a best-effort
// preprocessing aid: malformed SQL passes through rather than failing, and
// the output is equivalent to the input for identifier-extraction purposes.
func Normalize(sql string) string {
	s := stripComments(sql)
	s = collapseWhitespace(s)

	var b strings.Builder
	last := 0
	for _, start := range clauseStarts(s) {
		seg := strings.TrimRight(s[last:start], " ")
		b.WriteString(seg)
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		last = start
	}
	b.WriteString(s[last:])

	return strings.TrimSpace(b.String())
}

// stripComments removes -- line comments and /* */ block comments, leaving
// string literals and quoted identifiers untouched. Comments are replaced
// with a single space so adjacent tokens do not fuse.
func stripComments(sql string) string {
	var b strings.Builder
	var quote byte
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
			for i < n && sql[i] != '\n' {
				i++
			}
			b.WriteByte(' ')
		case c == '/' && i+1 < n && sql[i+1] == '*':
			i += 2
			for i+1 < n && !(sql[i] == '*' && sql[i+1] == '/') {
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// collapseWhitespace reduces every run of whitespace outside quotes to a
// single space and trims the ends.
func collapseWhitespace(sql string) string {
	var b strings.Builder
	var quote byte
	inSpace := false

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			b.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c
			b.WriteByte(c)
			inSpace = false
		case ' ', '\t', '\n', '\r':
			if !inSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inSpace = true
		default:
			b.WriteByte(c)
			inSpace = false
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// clauseStarts returns the byte offsets, outside quotes, where a clause
// keyword begins at a word boundary.
func clauseStarts(sql string) []int {
	var starts []int
	var quote byte

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' || c == '`' {
			quote = c
			continue
		}

		if i > 0 && isWordByte(sql[i-1]) {
			continue
		}
		if kw := matchClauseKeyword(sql, i); kw != "" {
			starts = append(starts, i)
			i += len(kw) - 1
		}
	}

	return starts
}

func matchClauseKeyword(sql string, i int) string {
	for _, kw := range clauseKeywords {
		end := i + len(kw)
		if end > len(sql) {
			continue
		}
		if !strings.EqualFold(sql[i:end], kw) {
			continue
		}
		if end < len(sql) && isWordByte(sql[end]) {
			continue
		}
		return kw
	}
	return ""
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
