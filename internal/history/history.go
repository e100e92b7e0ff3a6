// Package history stores resolved recommendations in PostgreSQL.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultUserName = "User"
	defaultLimit    = 20
	maxLimit        = 200
)

const schema = `CREATE TABLE IF NOT EXISTS recommendations (
	id              UUID PRIMARY KEY,
	user_name       TEXT NOT NULL,
	career          TEXT NOT NULL,
	recommendations TEXT[] NOT NULL DEFAULT '{}',
	path            TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Record is a stored recommendation.
type Record struct {
	ID              uuid.UUID `json:"id"`
	UserName        string    `json:"user"`
	Career          string    `json:"career"`
	Recommendations []string  `json:"recommendations"`
	Path            string    `json:"path"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewRecord returns a record with a fresh id and timestamp. A blank user name
// becomes "User".
func NewRecord(userName, career string, recommendations []string, path string) Record {
	if userName = strings.TrimSpace(userName); userName == "" {
		userName = defaultUserName
	}
	return Record{
		ID:              uuid.New(),
		UserName:        userName,
		Career:          career,
		Recommendations: append([]string(nil), recommendations...),
		Path:            path,
		CreatedAt:       time.Now().UTC(),
	}
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the recommendations table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save inserts r.
func (s *Store) Save(ctx context.Context, r Record) error {
	recommendations := r.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO recommendations (id, user_name, career, recommendations, path, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.UserName, r.Career, recommendations, r.Path, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_name, career, recommendations, path, created_at
		 FROM recommendations
		 ORDER BY created_at DESC
		 LIMIT $1`,
		ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var r Record
		err := row.Scan(&r.ID, &r.UserName, &r.Career, &r.Recommendations, &r.Path, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan recommendations: %w", err)
	}
	return records, nil
}

// ClampLimit maps non-positive limits to the default and caps large ones.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
