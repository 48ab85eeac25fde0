package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mrbrowning/leaderboard/internal/entities"
)

const (
	selectUserEffortsQuery = `
SELECT e.id, e.start_time, e.duration, l.id, l.latitude, l.longitude
FROM efforts e
JOIN locations l ON l.id = e.location
WHERE e."user" = $1
ORDER BY e.start_time`
	// The conflict-tolerant insert plus select fallback keeps location
	// storage idempotent under concurrent inserts of the same coordinates
	// without aborting the enclosing transaction.
	insertLocationQuery = `
INSERT INTO locations (latitude, longitude) VALUES ($1, $2)
ON CONFLICT (latitude, longitude) DO NOTHING
RETURNING id`
	selectLocationIDQuery = `SELECT id FROM locations WHERE latitude = $1 AND longitude = $2`
	insertEffortQuery     = `
INSERT INTO efforts (start_time, duration, "user", location) VALUES ($1, $2, $3, $4)
ON CONFLICT (start_time, duration, "user", location) DO NOTHING`
	deleteEffortQuery = `
DELETE FROM efforts
WHERE start_time = $1 AND duration = $2 AND "user" = $3 AND location = $4`
)

// loadEfforts reads the effort rows of a user and reconstitutes them with
// their locations resolved.
func (p *Postgres) loadEfforts(ctx context.Context, q querier, userID int64) ([]*entities.Effort, error) {
	rows, err := q.Query(ctx, selectUserEffortsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("load efforts: %w", err)
	}
	defer rows.Close()

	efforts := make([]*entities.Effort, 0)
	for rows.Next() {
		var (
			effortID, locationID, seconds int64
			startTime                     time.Time
			latitude, longitude           float64
		)
		if err := rows.Scan(&effortID, &startTime, &seconds, &locationID, &latitude, &longitude); err != nil {
			return nil, fmt.Errorf("scan effort: %w", err)
		}

		location, err := entities.NewLocation(entities.Fields{
			"latitude":  latitude,
			"longitude": longitude,
		})
		if err != nil {
			return nil, fmt.Errorf("reconstitute location %d: %w", locationID, err)
		}
		if err := location.SetID(locationID); err != nil {
			return nil, err
		}

		effort, err := entities.NewEffort(entities.Fields{
			"start_time": startTime,
			"duration":   time.Duration(seconds) * time.Second,
			"location":   location,
		})
		if err != nil {
			return nil, fmt.Errorf("reconstitute effort %d: %w", effortID, err)
		}
		if err := effort.SetID(effortID); err != nil {
			return nil, err
		}
		efforts = append(efforts, effort)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate efforts: %w", err)
	}

	return efforts, nil
}

// saveEffort inserts an effort row for a user, resolving or creating its
// location first. A duplicate effort is already recorded and inserts nothing.
func (p *Postgres) saveEffort(ctx context.Context, tx pgx.Tx, userID int64, effort *entities.Effort) error {
	locationID, err := p.ensureLocation(ctx, tx, effort.Location())
	if err != nil {
		return err
	}

	seconds := int64(effort.Duration().Seconds())
	if _, err := tx.Exec(ctx, insertEffortQuery, effort.StartTime(), seconds, userID, locationID); err != nil {
		return fmt.Errorf("insert effort: %w", err)
	}
	return nil
}

// ensureLocation returns the persisted id for the location, creating the row
// if these coordinates have never been stored.
func (p *Postgres) ensureLocation(ctx context.Context, tx pgx.Tx, location *entities.Location) (int64, error) {
	if location.ID() != 0 {
		return location.ID(), nil
	}

	var id int64
	err := tx.QueryRow(ctx, insertLocationQuery, location.Latitude(), location.Longitude()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Identical coordinates are already stored; reuse that row.
		err = tx.QueryRow(ctx, selectLocationIDQuery, location.Latitude(), location.Longitude()).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("ensure location: %w", err)
	}

	if err := location.SetID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// deleteEffort removes an effort row by exact match on its value fields.
// Efforts expose no surrogate identifier to callers.
func (p *Postgres) deleteEffort(ctx context.Context, tx pgx.Tx, userID int64, effort *entities.Effort) error {
	locationID := effort.Location().ID()
	if locationID == 0 {
		err := tx.QueryRow(ctx, selectLocationIDQuery,
			effort.Location().Latitude(), effort.Location().Longitude()).Scan(&locationID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve effort location: %w", err)
		}
	}

	seconds := int64(effort.Duration().Seconds())
	if _, err := tx.Exec(ctx, deleteEffortQuery, effort.StartTime(), seconds, userID, locationID); err != nil {
		return fmt.Errorf("delete effort: %w", err)
	}
	return nil
}
