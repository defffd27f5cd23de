// Package blazestore is a filesystem-backed parquet table store queried
// with SQL.
//
// Each logical table is a directory under a common root holding one or more
// parquet files, optionally partitioned Hive-style by column values.
// Queries reference tables by their logical names; blazestore resolves each
// name to its on-disk location and rewrites the reference into a glob read
// expression before execution.
//
// Example usage:
//
//	s, err := blazestore.OpenDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := blazestore.Put(s, rows, "quotes/daily", blazestore.PartitionBy("date")); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := s.SQL(ctx, "SELECT * FROM daily WHERE price > 100")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, err := result.Collect(ctx)
package blazestore

import (
	"github.com/blazekit/blazestore/internal/sqlscan"
	"github.com/blazekit/blazestore/internal/store"
)

// Store is a table store rooted at a directory.
type Store = store.Store

// Result is a rewritten query, optionally already executed.
type Result = store.Result

// Engine executes rewritten queries; plug one in with WithEngine to go
// beyond the bundled subset.
type Engine = store.Engine

// EngineFunc adapts a function to the Engine interface.
type EngineFunc = store.EngineFunc

// Option configures a Store.
type Option = store.Option

// QueryOption configures a SQL call.
type QueryOption = store.QueryOption

// PutOption configures a Put call.
type PutOption = store.PutOption

var (
	// Open returns a store rooted at the given directory.
	Open = store.Open

	// OpenDefault returns a store at the configured default location.
	OpenDefault = store.OpenDefault

	// WithEngine replaces the bundled query engine.
	WithEngine = store.WithEngine

	// AbsPath treats extracted table names as absolute directory paths.
	AbsPath = store.AbsPath

	// Eager executes a query during SQL instead of at first Collect.
	Eager = store.Eager

	// PartitionBy writes rows into Hive-style partition subdirectories.
	PartitionBy = store.PartitionBy

	// PutAbsPath treats the Put target as an absolute directory path.
	PutAbsPath = store.PutAbsPath
)

// Put writes rows into the named table's directory, creating it if needed.
func Put[T any](s *Store, rows []T, name string, opts ...PutOption) error {
	return store.Put(s, rows, name, opts...)
}

// ExtractTableNames returns the set of distinct logical table names a query
// references, excluding WITH-clause CTE names. The set is unordered.
func ExtractTableNames(sql string) map[string]struct{} {
	return sqlscan.ExtractTableNames(sql)
}

// Normalize strips comments from SQL text and reindents it into a canonical
// form. Best-effort; malformed SQL passes through.
func Normalize(sql string) string {
	return sqlscan.Normalize(sql)
}
