// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/estimator/internal/models"
	"github.com/mmynk/estimator/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// pragmas are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateEstimate persists a new estimate.
func (s *SQLiteStore) CreateEstimate(ctx context.Context, est *models.Estimate) error {
	if est.ID == "" {
		est.ID = uuid.New().String()
	}
	if est.CreatedAt == 0 {
		est.CreatedAt = time.Now().Unix()
	}
	if est.UpdatedAt == 0 {
		est.UpdatedAt = est.CreatedAt
	}
	if est.Name == "" {
		est.Name = fmt.Sprintf("Estimate - %s", time.Unix(est.CreatedAt, 0).Format("Jan 2, 2006"))
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO estimates (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		est.ID, est.Name, est.CreatedAt, est.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert estimate: %w", err)
	}
	return nil
}

// GetEstimate retrieves an estimate by ID.
func (s *SQLiteStore) GetEstimate(ctx context.Context, estimateID string) (*models.Estimate, error) {
	est := &models.Estimate{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM estimates WHERE id = ?",
		estimateID,
	).Scan(&est.ID, &est.Name, &est.CreatedAt, &est.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, estimateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	return est, nil
}

// ListEstimates returns every estimate, most recently updated first.
func (s *SQLiteStore) ListEstimates(ctx context.Context) ([]*models.Estimate, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM estimates ORDER BY updated_at DESC, created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	defer rows.Close()

	var out []*models.Estimate
	for rows.Next() {
		est := &models.Estimate{}
		if err := rows.Scan(&est.ID, &est.Name, &est.CreatedAt, &est.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		out = append(out, est)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate estimates: %w", err)
	}
	return out, nil
}

// DeleteEstimate removes an estimate. Its line items are removed by cascade.
func (s *SQLiteStore) DeleteEstimate(ctx context.Context, estimateID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM estimates WHERE id = ?", estimateID)
	if err != nil {
		return fmt.Errorf("failed to delete estimate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, estimateID)
	}
	return nil
}
