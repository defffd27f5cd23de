package blazestore

import (
	"context"
	"testing"
)

type tick struct {
	Symbol string  `parquet:"symbol"`
	Price  float64 `parquet:"price"`
}

func TestRoundTrip(t *testing.T) {
	s := Open(t.TempDir())

	rows := []tick{
		{Symbol: "AAPL", Price: 190.5},
		{Symbol: "MSFT", Price: 410.0},
	}
	if err := Put(s, rows, "ticks"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	result, err := s.SQL(context.Background(), "SELECT * FROM ticks WHERE price > 200")
	if err != nil {
		t.Fatalf("SQL() error = %v", err)
	}

	got, err := result.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 1 || got[0]["symbol"] != "MSFT" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestExtractTableNames(t *testing.T) {
	names := ExtractTableNames("WITH t AS (SELECT * FROM x) SELECT * FROM t JOIN a.b.c ON 1 = 1")

	if _, ok := names["x"]; !ok {
		t.Error("expected x in result")
	}
	if _, ok := names["c"]; !ok {
		t.Error("expected c in result")
	}
	if _, ok := names["t"]; ok {
		t.Error("CTE name t should be excluded")
	}
}
