package remote

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/blazekit/blazestore/internal/config"
)

// clickHouseOptions builds connection options for a configured cluster.
func clickHouseOptions(db config.Database) (*clickhouse.Options, error) {
	if err := db.CheckFields("urls", "user", "password"); err != nil {
		return nil, fmt.Errorf("database configuration error: %w", err)
	}
	return &clickhouse.Options{
		Addr: db.URLs,
		Auth: clickhouse.Auth{
			Username: db.User,
			Password: db.Password,
		},
	}, nil
}

// ReadClickHouse executes a query against the configured ClickHouse cluster
// and returns all result rows. The driver load-balances across the
// configured addresses.
func ReadClickHouse(ctx context.Context, query string, dbCfg config.Database) ([]map[string]interface{}, error) {
	opts, err := clickHouseOptions(dbCfg)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute clickhouse query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	types := rows.ColumnTypes()
	columns := rows.Columns()

	result := make([]map[string]interface{}, 0)
	for rows.Next() {
		ptrs := make([]interface{}, len(types))
		for i, ct := range types {
			ptrs[i] = reflect.New(ct.ScanType()).Interface()
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = reflect.ValueOf(ptrs[i]).Elem().Interface()
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clickhouse rows: %w", err)
	}

	return result, nil
}
