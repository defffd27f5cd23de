// Package remote reads query results from external databases into the same
// map-row shape the table store uses, so remote data can be written into
// local tables with Put.
//
// Connection settings come from the store's settings file; missing settings
// are explicit errors naming the absent keys, never silent fallbacks.
package remote

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/blazekit/blazestore/internal/config"
)

// MySQLDSN builds a go-sql-driver DSN from a database settings section.
func MySQLDSN(db config.Database) (string, error) {
	if err := db.CheckFields("url", "user", "password"); err != nil {
		return "", fmt.Errorf("database configuration error: %w", err)
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/", db.User, db.Password, db.URL), nil
}

// ReadMySQL executes a query against the configured MySQL server and
// returns all result rows.
func ReadMySQL(ctx context.Context, query string, dbCfg config.Database) ([]map[string]interface{}, error) {
	dsn, err := MySQLDSN(dbCfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute mysql query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mysql rows: %w", err)
	}

	return result, nil
}

// scanRows drains a result set into map rows. Driver []byte values become
// strings so the rows are directly comparable and serializable.
func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}

	return result, nil
}
