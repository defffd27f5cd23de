package sqlscan

import (
	"reflect"
	"sort"
	"testing"
)

func sorted(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestExtractTableNames(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "simple FROM",
			query: "SELECT * FROM trades",
			want:  []string{"trades"},
		},
		{
			name:  "namespace qualified name reduces to last segment",
			query: "SELECT * FROM a.b.c",
			want:  []string{"c"},
		},
		{
			name:  "JOIN reference",
			query: "SELECT * FROM orders o JOIN customers c ON o.cid = c.id",
			want:  []string{"customers", "orders"},
		},
		{
			name:  "multiple joins",
			query: "SELECT * FROM a JOIN b ON a.x = b.x LEFT JOIN c ON b.y = c.y",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "alias after dotted name not consumed",
			query: "SELECT t.x FROM schema.table1 t WHERE t.x > 0",
			want:  []string{"table1"},
		},
		{
			name:  "quote characters stripped",
			query: `SELECT a.x FROM "quoted"."tbl"`,
			want:  []string{"tbl"},
		},
		{
			name:  "backtick quoting stripped",
			query: "SELECT * FROM `my_table`",
			want:  []string{"my_table"},
		},
		{
			name:  "CTE excluded even when referenced via FROM",
			query: "WITH t AS (SELECT * FROM x) SELECT * FROM t",
			want:  []string{"x"},
		},
		{
			name:  "multiple CTEs excluded",
			query: "WITH a AS (SELECT * FROM raw1), b AS (SELECT * FROM raw2) SELECT * FROM a JOIN b ON a.id = b.id",
			want:  []string{"raw1", "raw2"},
		},
		{
			name:  "SUBSTRING argument FROM not a table introducer",
			query: "SELECT SUBSTRING(col FROM 1 FOR 3) FROM real_table",
			want:  []string{"real_table"},
		},
		{
			name:  "EXTRACT argument FROM not a table introducer",
			query: "SELECT EXTRACT(YEAR FROM order_date) FROM orders",
			want:  []string{"orders"},
		},
		{
			name:  "nested parentheses inside neutralized call",
			query: "SELECT SUBSTRING(coalesce(a, b) FROM 1 FOR 2) FROM t1",
			want:  []string{"t1"},
		},
		{
			name:  "subquery after FROM not captured as a name",
			query: "SELECT * FROM (SELECT * FROM inner_table) sub",
			want:  []string{"inner_table"},
		},
		{
			name:  "multi-statement union",
			query: "SELECT * FROM a; SELECT * FROM b;",
			want:  []string{"a", "b"},
		},
		{
			name:  "duplicate references deduplicated",
			query: "SELECT * FROM t1 JOIN t1 ON 1 = 1; SELECT * FROM t1",
			want:  []string{"t1"},
		},
		{
			name:  "no FROM or JOIN yields empty set",
			query: "SELECT 1",
			want:  []string{},
		},
		{
			name:  "empty input yields empty set",
			query: "",
			want:  []string{},
		},
		{
			name:  "CTE defined in one statement suppresses the name in all",
			query: "WITH shared AS (SELECT * FROM src) SELECT * FROM shared; SELECT * FROM shared",
			want:  []string{"src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sorted(ExtractTableNames(tt.query))
			want := tt.want
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ExtractTableNames(%q) = %v, want %v", tt.query, got, want)
			}
		})
	}
}

func TestExtractTableNamesIdempotent(t *testing.T) {
	query := "WITH t AS (SELECT * FROM x) SELECT * FROM t JOIN a.b.c ON 1 = 1"

	first := sorted(ExtractTableNames(query))
	second := sorted(ExtractTableNames(query))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent: first %v, second %v", first, second)
	}
}

func TestNeutralizeTextFunctions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple substring call removed",
			input: "SELECT SUBSTRING(x FROM 1 FOR 2) FROM t",
			want:  "SELECT  FROM t",
		},
		{
			name:  "nested parens removed entirely",
			input: "SELECT substring(f(g(x)) FROM 1) FROM t",
			want:  "SELECT  FROM t",
		},
		{
			name:  "multiple calls removed",
			input: "SELECT SUBSTRING(a FROM 1), EXTRACT(YEAR FROM d) FROM t",
			want:  "SELECT ,  FROM t",
		},
		{
			name:  "unbalanced call truncates to call start",
			input: "SELECT SUBSTRING(a FROM 1",
			want:  "SELECT ",
		},
		{
			name:  "no calls untouched",
			input: "SELECT * FROM t",
			want:  "SELECT * FROM t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := neutralizeTextFunctions(tt.input); got != tt.want {
				t.Errorf("neutralizeTextFunctions(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
