// Package storage persists search history in Postgres. The repository is
// optional: the service runs fully without a database.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	// Postgres driver registration.
	_ "github.com/lib/pq"

	"github.com/aaravbangsmetal/blaster/internal/config"
)

// historySchema creates the search history table.
const historySchema = `
CREATE TABLE IF NOT EXISTS search_history (
	id           BIGSERIAL PRIMARY KEY,
	query        TEXT        NOT NULL,
	categories   TEXT        NOT NULL DEFAULT '',
	result_count INTEGER     NOT NULL DEFAULT 0,
	took_ms      BIGINT      NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// SearchRecord is one row of search history.
type SearchRecord struct {
	ID          int64     `db:"id" json:"id"`
	Query       string    `db:"query" json:"query"`
	Categories  string    `db:"categories" json:"categories"`
	ResultCount int       `db:"result_count" json:"result_count"`
	TookMs      int64     `db:"took_ms" json:"took_ms"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Connect opens and pings a Postgres connection from config.
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// HistoryRepository reads and writes search history rows.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a repository over an open connection.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// EnsureSchema creates the history table if it does not exist.
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("create search_history table: %w", err)
	}
	return nil
}

// Record inserts one history row.
func (r *HistoryRepository) Record(ctx context.Context, query string, categories []string, resultCount int, tookMs int64) error {
	const stmt = `
		INSERT INTO search_history (query, categories, result_count, took_ms)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, stmt, query, strings.Join(categories, ","), resultCount, tookMs); err != nil {
		return fmt.Errorf("insert search history: %w", err)
	}
	return nil
}

// Recent returns the most recent history rows, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]SearchRecord, error) {
	const stmt = `
		SELECT id, query, categories, result_count, took_ms, created_at
		FROM search_history
		ORDER BY id DESC
		LIMIT $1`

	records := []SearchRecord{}
	if err := r.db.SelectContext(ctx, &records, stmt, limit); err != nil {
		return nil, fmt.Errorf("select search history: %w", err)
	}
	return records, nil
}
