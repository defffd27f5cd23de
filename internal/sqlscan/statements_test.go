package sqlscan

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single statement without semicolon",
			input: "SELECT * FROM a",
			want:  []string{"SELECT * FROM a"},
		},
		{
			name:  "two statements",
			input: "SELECT * FROM a; SELECT * FROM b;",
			want:  []string{"SELECT * FROM a", "SELECT * FROM b"},
		},
		{
			name:  "semicolon inside string literal not a boundary",
			input: "SELECT 'a;b' FROM t; SELECT 1",
			want:  []string{"SELECT 'a;b' FROM t", "SELECT 1"},
		},
		{
			name:  "semicolon inside quoted identifier not a boundary",
			input: `SELECT * FROM "odd;name"`,
			want:  []string{`SELECT * FROM "odd;name"`},
		},
		{
			name:  "semicolon inside line comment not a boundary",
			input: "SELECT 1 -- a; b\n; SELECT 2",
			want:  []string{"SELECT 1 -- a; b", "SELECT 2"},
		},
		{
			name:  "semicolon inside block comment not a boundary",
			input: "SELECT 1 /* a; b */; SELECT 2",
			want:  []string{"SELECT 1 /* a; b */", "SELECT 2"},
		},
		{
			name:  "empty statements dropped",
			input: ";;  ; SELECT 1;;",
			want:  []string{"SELECT 1"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitStatements(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}
