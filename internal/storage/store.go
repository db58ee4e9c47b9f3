// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/estimator/internal/models"
)

// ErrNotFound is returned when the requested estimate does not exist.
var ErrNotFound = errors.New("estimate not found")

// Store defines the interface for estimate storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateEstimate persists a new estimate.
	// ID and CreatedAt are populated by the store when empty.
	CreateEstimate(ctx context.Context, est *models.Estimate) error

	// GetEstimate retrieves an estimate by its ID.
	// Returns ErrNotFound if the estimate does not exist.
	GetEstimate(ctx context.Context, estimateID string) (*models.Estimate, error)

	// ListEstimates returns every estimate, most recently updated first.
	ListEstimates(ctx context.Context) ([]*models.Estimate, error)

	// DeleteEstimate removes an estimate and its line items.
	DeleteEstimate(ctx context.Context, estimateID string) error

	// LoadItems returns the settled line items of an estimate in display order.
	LoadItems(ctx context.Context, estimateID string) ([]models.LineItem, error)

	// SaveItems replaces the line items of an estimate in one transaction
	// and bumps its UpdatedAt.
	SaveItems(ctx context.Context, estimateID string, items []models.LineItem) error

	// Close releases any resources held by the store.
	Close() error
}
