package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// tradeRow is a minimal test schema.
type tradeRow struct {
	Symbol string  `parquet:"symbol"`
	Price  float64 `parquet:"price"`
	Volume int64   `parquet:"volume"`
}

// writeParquetFile writes rows to a parquet file at path, creating parent
// directories as needed.
func writeParquetFile(t *testing.T, path string, rows []tradeRow) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[tradeRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
}
