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

// SQLite backed store mapping system names to positions.
// Names are stored exactly as given; lookups are case-sensitive.
type SqliteCoordinateStore struct {
	DB *sql.DB
}

func NewSqliteCoordinateStore(db *sql.DB) *SqliteCoordinateStore {
	return &SqliteCoordinateStore{DB: db}
}

// Fetch cached positions for the given systems.
func (s *SqliteCoordinateStore) GetMany(
	ctx context.Context,
	systems []string,
) (_ map[string]domain.Position, err error) {
	defer obs.Time(ctx, "coords.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("coordinate store: db is nil")
	}

	uniq := uniqueNames(systems)
	if len(uniq) == 0 {
		return map[string]domain.Position{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq))
	for _, name := range uniq {
		ph = append(ph, "?")
		args = append(args, name)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT system, x, y, z
    FROM coordinate_cache
    WHERE system IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteCoordinateStore) PutMany(ctx context.Context, positions map[string]domain.Position) (err error) {
	defer obs.Time(ctx, "coords.sqlite.PutMany")(&err)

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
	INSERT OR REPLACE INTO coordinate_cache (system, x, y, z)
    VALUES (?, ?, ?, ?);
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

// uniqueNames drops blank and repeated names, keeping first-seen order.
func uniqueNames(systems []string) []string {
	seen := make(map[string]struct{}, len(systems))
	uniq := make([]string, 0, len(systems))
	for _, name := range systems {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		uniq = append(uniq, name)
	}
	return uniq
}
