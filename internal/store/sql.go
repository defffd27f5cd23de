package store

import (
	"context"
	"sort"

	"github.com/blazekit/blazestore/internal/sqlscan"
)

type queryOptions struct {
	absPath bool
	eager   bool
}

// QueryOption configures a SQL call.
type QueryOption func(*queryOptions)

// AbsPath treats each extracted table name as an absolute directory path
// instead of a name under the store root.
func AbsPath() QueryOption {
	return func(o *queryOptions) {
		o.absPath = true
	}
}

// Eager executes the rewritten query immediately instead of deferring to
// the first Collect call.
func Eager() QueryOption {
	return func(o *queryOptions) {
		o.eager = true
	}
}

// SQL resolves every logical table name referenced by the query to its
// on-disk location, rewrites the query into glob read expressions, and
// returns a Result. By default the result is lazy: nothing is read until
// Collect. A query referencing no tables is returned unrewritten.
//
// Table existence is not validated here; a missing table surfaces as a
// "no files match" error at execution time.
func (s *Store) SQL(ctx context.Context, query string, opts ...QueryOption) (*Result, error) {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}

	names := sqlscan.ExtractTableNames(query)

	repl := make(map[string]string, len(names))
	tables := make([]string, 0, len(names))
	for name := range names {
		dir := name
		if !o.absPath {
			dir = s.TablePath(name)
		}
		repl[name] = ReadExpr(dir)
		tables = append(tables, name)
	}
	sort.Strings(tables)

	r := &Result{
		engine: s.engine,
		query:  sqlscan.Rewrite(query, repl),
		tables: tables,
	}

	if o.eager {
		if _, err := r.Collect(ctx); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Result is a rewritten query, optionally already executed.
type Result struct {
	engine    Engine
	query     string
	tables    []string
	rows      []map[string]interface{}
	collected bool
}

// Query returns the rewritten SQL text.
func (r *Result) Query() string {
	return r.query
}

// Tables returns the extracted logical table names, sorted for display.
// The extraction itself is unordered; the sort exists only here.
func (r *Result) Tables() []string {
	return r.tables
}

// Collect executes the rewritten query through the store's engine and
// returns the rows. The first call executes; subsequent calls return the
// cached rows.
func (r *Result) Collect(ctx context.Context) ([]map[string]interface{}, error) {
	if r.collected {
		return r.rows, nil
	}

	rows, err := r.engine.Execute(ctx, r.query)
	if err != nil {
		return nil, err
	}

	r.rows = rows
	r.collected = true
	return rows, nil
}
