// Package store implements a filesystem-backed table store: one directory
// per logical table under a common root, each holding one or more parquet
// files, optionally partitioned Hive-style by column values.
//
// Queries reference tables by their logical names; SQL resolves every name
// to the table's on-disk location, rewrites the query into glob read
// expressions, and hands the result to a query engine for execution.
package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blazekit/blazestore/internal/config"
	"github.com/blazekit/blazestore/internal/engine"
)

// Engine executes a rewritten query and returns its rows. The bundled
// engine handles a small subset; callers with richer SQL plug in their own.
type Engine interface {
	Execute(ctx context.Context, sql string) ([]map[string]interface{}, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, sql string) ([]map[string]interface{}, error)

// Execute calls f.
func (f EngineFunc) Execute(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	return f(ctx, sql)
}

// Store is a table store rooted at a directory.
type Store struct {
	root   string
	engine Engine
}

// Option configures a Store.
type Option func(*Store)

// WithEngine replaces the bundled query engine.
func WithEngine(e Engine) Option {
	return func(s *Store) {
		s.engine = e
	}
}

// Open returns a store rooted at the given directory.
func Open(root string, opts ...Option) *Store {
	s := &Store{
		root:   root,
		engine: EngineFunc(engine.Execute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenDefault returns a store rooted at the user's configured location: the
// settings file's path override when present, the home-directory default
// otherwise. A missing settings file is not an error.
func OpenDefault(opts ...Option) (*Store, error) {
	root, err := config.DefaultRoot()
	if err != nil {
		return nil, err
	}
	if settings, err := config.Load(root); err == nil {
		root = settings.Root(root)
	}
	return Open(root, opts...), nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// TablePath returns the full on-disk directory for a logical table name.
// Names may use `/` separators to nest tables, e.g. "quotes/daily".
func (s *Store) TablePath(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Has reports whether the named table exists in the store.
func (s *Store) Has(name string) bool {
	info, err := os.Stat(s.TablePath(name))
	return err == nil && info.IsDir()
}

// ReadExpr builds the glob read expression for a table directory: all
// parquet files at any nesting depth, which covers Hive-style partition
// subdirectories. The exact shape is a contract with the query engine.
func ReadExpr(dir string) string {
	return fmt.Sprintf("read_parquet('%s/**/*.parquet')", filepath.ToSlash(dir))
}

// List returns the sorted logical names of all tables in the store: every
// directory under the root that holds parquet files, with partition
// segments stripped. A missing root yields an empty list.
func (s *Store) List() ([]string, error) {
	seen := make(map[string]struct{})

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "conf" && filepath.Dir(path) == s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".parquet") {
			return nil
		}

		rel, err := filepath.Rel(s.root, filepath.Dir(path))
		if err != nil {
			return err
		}
		segs := strings.Split(filepath.ToSlash(rel), "/")
		for len(segs) > 0 && strings.Contains(segs[len(segs)-1], "=") {
			segs = segs[:len(segs)-1]
		}
		if len(segs) == 0 || segs[0] == "." {
			return nil
		}
		seen[strings.Join(segs, "/")] = struct{}{}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
