package reader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// maxFiles caps how many files a single pattern may expand to.
const maxFiles = 1000

// ReadGlob reads all rows from every parquet file matching the pattern.
//
// Three pattern forms are supported:
//   - a plain file path (no metacharacters) reads that single file
//   - a standard glob is expanded with filepath.Glob
//   - a pattern containing `**` matches files at any directory depth below
//     the prefix, the form table read expressions use
//     ("/db/trades/**/*.parquet")
//
// Each row is tagged with a "_file" column naming its source file, and
// Hive-style `col=value` path segments under the pattern root surface as
// columns. Files are read in sorted path order. An error is returned when
// no files match.
func ReadGlob(pattern string) ([]map[string]interface{}, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		return readFile(pattern)
	}

	matches, err := expand(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}
	sort.Strings(matches)

	var allRows []map[string]interface{}
	for _, path := range matches {
		rows, err := readFile(path)
		if err != nil {
			return nil, err
		}
		allRows = append(allRows, rows...)
	}

	return allRows, nil
}

// expand resolves a glob pattern to file paths, handling the recursive `**`
// segment that filepath.Glob has no syntax for.
func expand(pattern string) ([]string, error) {
	idx := strings.Index(pattern, "**")
	if idx < 0 {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		return matches, nil
	}

	// Split into a fixed root and a suffix pattern applied to file names at
	// any depth, e.g. "/db/trades/" + "*.parquet".
	root := filepath.Dir(pattern[:idx])
	suffix := strings.TrimLeft(pattern[idx+2:], "/\\")
	if suffix == "" {
		suffix = "*"
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(suffix, d.Name())
		if err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return matches, nil
}

// PartitionValues extracts Hive-style partition columns from a file path.
// Every `col=value` path segment contributes one column; values are kept
// as strings.
func PartitionValues(path string) map[string]string {
	values := make(map[string]string)
	dir := filepath.Dir(path)

	for _, seg := range strings.Split(filepath.ToSlash(dir), "/") {
		eq := strings.Index(seg, "=")
		if eq <= 0 || eq == len(seg)-1 {
			continue
		}
		values[seg[:eq]] = seg[eq+1:]
	}

	return values
}
