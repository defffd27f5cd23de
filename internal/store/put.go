package store

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

type putOptions struct {
	partitions []string
	absPath    bool
}

// PutOption configures a Put call.
type PutOption func(*putOptions)

// PartitionBy splits the written rows into Hive-style `col=value`
// subdirectories keyed on the named columns. Partition columns are also
// retained inside the data files.
func PartitionBy(columns ...string) PutOption {
	return func(o *putOptions) {
		o.partitions = columns
	}
}

// PutAbsPath treats the table name as an absolute directory path instead
// of a name under the store root.
func PutAbsPath() PutOption {
	return func(o *putOptions) {
		o.absPath = true
	}
}

// Put writes rows into the named table's directory, creating it if needed.
// Unpartitioned tables are written as a single data.parquet; partitioned
// tables get one uniquely named part file per partition so repeated Put
// calls append rather than overwrite.
func Put[T any](s *Store, rows []T, name string, opts ...PutOption) error {
	var o putOptions
	for _, opt := range opts {
		opt(&o)
	}

	dir := name
	if !o.absPath {
		dir = s.TablePath(name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create table directory %s: %w", dir, err)
	}

	if len(o.partitions) == 0 {
		return writeParquet(filepath.Join(dir, "data.parquet"), rows)
	}

	indexes, err := partitionFieldIndexes[T](o.partitions)
	if err != nil {
		return err
	}

	groups := make(map[string][]T)
	for _, row := range rows {
		v := reflect.ValueOf(row)
		segs := make([]string, len(o.partitions))
		for i, col := range o.partitions {
			segs[i] = fmt.Sprintf("%s=%v", col, v.Field(indexes[i]).Interface())
		}
		key := filepath.Join(segs...)
		groups[key] = append(groups[key], row)
	}

	for key, group := range groups {
		partDir := filepath.Join(dir, key)
		if err := os.MkdirAll(partDir, 0o755); err != nil {
			return fmt.Errorf("failed to create partition directory %s: %w", partDir, err)
		}
		part := filepath.Join(partDir, fmt.Sprintf("part-%s.parquet", uuid.NewString()))
		if err := writeParquet(part, group); err != nil {
			return err
		}
	}

	return nil
}

// writeParquet writes rows to a single parquet file.
func writeParquet[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	return f.Close()
}

// partitionFieldIndexes maps partition column names to struct field indexes
// on T, matching by parquet tag first and field name second.
func partitionFieldIndexes[T any](columns []string) ([]int, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("partitioned Put requires struct rows, got %T", zero)
	}

	byColumn := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Name
		if tag, ok := field.Tag.Lookup("parquet"); ok {
			if col := strings.Split(tag, ",")[0]; col != "" {
				name = col
			}
		}
		byColumn[name] = i
	}

	indexes := make([]int, len(columns))
	for i, col := range columns {
		idx, ok := byColumn[col]
		if !ok {
			return nil, fmt.Errorf("partition column %q not found in row type %s", col, t.Name())
		}
		indexes[i] = idx
	}

	return indexes, nil
}
