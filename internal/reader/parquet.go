// Package reader provides functionality for reading Apache Parquet files
// from a table store.
//
// It uses the parquet-go library and returns rows as maps for flexible data
// access. Besides single files it can expand glob patterns, including the
// recursive `**` form used by table read expressions, and surfaces
// Hive-style partition directory values as row columns.
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Reader reads a single parquet file and returns rows as maps.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is returned as a map where keys are column names and values are
// the column values. The entire file is loaded into memory, so this method
// may not be suitable for very large files.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the parquet reader and releases associated resources.
// It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// readFile reads one file's rows, tagging each with its source path and any
// partition values encoded in the path. Partition columns never overwrite a
// column stored in the file itself.
func readFile(path string) ([]map[string]interface{}, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rows, readErr := r.ReadAll()
	closeErr := r.Close()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}

	partitions := PartitionValues(path)
	for i := range rows {
		rows[i]["_file"] = path
		for col, val := range partitions {
			if _, exists := rows[i][col]; !exists {
				rows[i][col] = val
			}
		}
	}

	return rows, nil
}
