package cache

import (
	"context"
	"database/sql"
	"errors"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLCoordinateStore is a PostgreSQL-backed store mapping system names to positions.
type SQLCoordinateStore struct {
	DB *sql.DB
}

func NewSQLCoordinateStore(db *sql.DB) *SQLCoordinateStore {
	return &SQLCoordinateStore{DB: db}
}

// Fetch cached positions for the given systems.
func (s *SQLCoordinateStore) GetMany(
	ctx context.Context,
	systems []string,
) (_ map[string]domain.Position, err error) {
	defer obs.Time(ctx, "coords.postgres.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("coordinate store: db is nil")
	}

	uniq := uniqueNames(systems)
	if len(uniq) == 0 {
		return map[string]domain.Position{}, nil
	}

	q := `
	SELECT system, x, y, z
    FROM coordinate_cache
    WHERE system = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get coordinate store: query coordinate_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Position, len(uniq))
	for rows.Next() {
		var name string
		var p domain.Position
		if err := rows.Scan(&name, &p.X, &p.Y, &p.Z); err != nil {
			return nil, fmt.Errorf("get coordinate store: scan rows: %w", err)
		}
		out[name] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get coordinate store: row iteration: %w", err)
	}

	return out, nil
}

// Store system -> position mappings.
func (s *SQLCoordinateStore) PutMany(ctx context.Context, positions map[string]domain.Position) (err error) {
	defer obs.Time(ctx, "coords.postgres.PutMany")(&err)

	if s.DB == nil {
		return errors.New("coordinate store: db is nil")
	}

	if len(positions) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert coordinate store: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO coordinate_cache (system, x, y, z)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (system) DO UPDATE
	SET x = EXCLUDED.x,
		y = EXCLUDED.y,
		z = EXCLUDED.z;
	`)
	if err != nil {
		return fmt.Errorf("insert coordinate store: db prepare: %w", err)
	}
	defer stmt.Close()

	for name, p := range positions {
		if strings.TrimSpace(name) == "" {
			return errors.New("insert coordinate store: empty system key")
		}

		if _, err := stmt.ExecContext(ctx, name, p.X, p.Y, p.Z); err != nil {
			return fmt.Errorf("insert coordinate store system=%q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert coordinate store commit: %w", err)
	}

	return nil
}
