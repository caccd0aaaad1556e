package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound means the requested record does not exist in the source store.
var ErrNotFound = errors.New("source record not found")

// Queries is the SQL triple one entity type needs: a lookup by primary key,
// a full scan, and a count. ByID takes exactly one $1 placeholder; All takes
// $1 as LIMIT (pass nil for no limit).
type Queries struct {
	ByID  string
	All   string
	Count string
}

// SQLSource reads records from the relational store. It is read-only and
// entity-agnostic: callers supply the Queries for the entity they sync, and
// rows come back as generic Records keyed by column name.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// FetchByID returns the single record matching the primary key.
func (s *SQLSource) FetchByID(ctx context.Context, q Queries, id string) (Record, error) {
	rows, err := s.db.QueryContext(ctx, q.ByID, id)
	if err != nil {
		return nil, fmt.Errorf("fetch by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("fetch by id: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return rec, rows.Err()
}

// FetchAll returns up to limit records, every record when limit is zero.
func (s *SQLSource) FetchAll(ctx context.Context, q Queries, limit int) ([]Record, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.db.QueryContext(ctx, q.All, lim)
	if err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}
	return out, nil
}

// Count returns the number of source records for the entity.
func (s *SQLSource) Count(ctx context.Context, q Queries) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, q.Count).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// scanRecord reads the current row into a Record keyed by column name.
// []byte values (how the driver surfaces text and numeric columns on generic
// scans) are normalized to strings so downstream property bags stay scalar.
func scanRecord(rows *sql.Rows) (Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("scan record: %w", err)
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan record: %w", err)
	}

	rec := make(Record, len(cols))
	for i, col := range cols {
		v := values[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		rec[col] = v
	}
	return rec, nil
}
