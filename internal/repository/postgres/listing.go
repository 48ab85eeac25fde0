package postgres

import (
	"context"
	"fmt"
)

// collectIDs runs an id-listing query against the pool.
func (p *Postgres) collectIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	return p.collectIDsQ(ctx, p.db, query, args...)
}

// collectIDsQ runs an id-listing query against the pool or a transaction.
func (p *Postgres) collectIDsQ(ctx context.Context, q querier, query string, args ...any) ([]int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
