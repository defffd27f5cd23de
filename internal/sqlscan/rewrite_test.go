package sqlscan

import (
	"strings"
	"testing"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		query string
		repl  map[string]string
		want  string
	}{
		{
			name:  "single name",
			query: "SELECT * FROM trades",
			repl:  map[string]string{"trades": "read_parquet('/db/trades/**/*.parquet')"},
			want:  "SELECT * FROM read_parquet('/db/trades/**/*.parquet')",
		},
		{
			name:  "multiple names",
			query: "SELECT * FROM a JOIN b ON a.x = b.x",
			repl:  map[string]string{"a": "RA", "b": "RB"},
			want:  "SELECT * FROM RA JOIN RB ON RA.x = RB.x",
		},
		{
			name:  "longer name wins over its prefix",
			query: "SELECT * FROM trades_daily JOIN trades ON 1 = 1",
			repl:  map[string]string{"trades": "T", "trades_daily": "TD"},
			want:  "SELECT * FROM TD JOIN T ON 1 = 1",
		},
		{
			name:  "empty mapping returns query unchanged",
			query: "SELECT 1",
			repl:  map[string]string{},
			want:  "SELECT 1",
		},
		{
			name:  "regex metacharacters in names are literal",
			query: "SELECT * FROM a.b",
			repl:  map[string]string{"a.b": "X"},
			want:  "SELECT * FROM X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rewrite(tt.query, tt.repl); got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

// Substitution is literal, not identifier-boundary-aware. A logical name
// that recurs inside another identifier is rewritten there too; this is the
// documented contract, not an accident.
func TestRewriteLiteralSubstringPolicy(t *testing.T) {
	got := Rewrite("SELECT * FROM t JOIN t_archive ON 1 = 1", map[string]string{"t": "R"})

	want := "SELECT * FROM R JOIN R_archive ON 1 = 1"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewriteRoundTrip(t *testing.T) {
	query := "SELECT * FROM alpha JOIN beta ON alpha.id = beta.id"
	names := ExtractTableNames(query)

	repl := make(map[string]string, len(names))
	for name := range names {
		repl[name] = "read_parquet('/db/" + name + "/**/*.parquet')"
	}

	got := Rewrite(query, repl)

	for name, expr := range repl {
		if !strings.Contains(got, expr) {
			t.Errorf("rewritten query missing glob expression for %q: %q", name, got)
		}
	}
	if strings.Contains(got, "FROM alpha") || strings.Contains(got, "JOIN beta") {
		t.Errorf("rewritten query still references a logical name: %q", got)
	}
}
