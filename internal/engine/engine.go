package engine

import (
	"context"
	"fmt"

	"github.com/blazekit/blazestore/internal/reader"
)

// Execute parses and runs a rewritten query, returning the matching rows.
//
// Only the bundled subset is understood; queries beyond it (joins, CTEs,
// projections, aggregates) fail with an error naming the limitation so
// callers know to configure a full SQL engine instead.
func Execute(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	q, err := Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("bundled engine supports only SELECT * FROM read_parquet('...') [WHERE ...] [LIMIT n]: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := reader.ReadGlob(q.Source)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err = ApplyFilter(rows, q.Filter)
	if err != nil {
		return nil, err
	}

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	return rows, nil
}
