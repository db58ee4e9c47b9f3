package estimate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/estimator/internal/models"
	"github.com/mmynk/estimator/internal/storage"
)

// Repository loads and persists the settled items of an estimate.
type Repository interface {
	LoadItems(ctx context.Context, estimateID string) ([]models.LineItem, error)
	SaveItems(ctx context.Context, estimateID string, items []models.LineItem) error
}

// Registry keeps one Sheet per estimate in memory and runs at most one
// operation per estimate at a time. Sheets are loaded lazily from the
// repository and written back after every Update.
type Registry struct {
	repo Repository
	opts []Option

	mu     sync.Mutex
	sheets map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	sheet *Sheet
}

// NewRegistry creates a registry. repo may be nil, in which case sheets live
// only in memory. opts are applied to every sheet the registry creates.
func NewRegistry(repo Repository, opts ...Option) *Registry {
	return &Registry{
		repo:   repo,
		opts:   opts,
		sheets: make(map[string]*entry),
	}
}

// View runs fn with exclusive access to the estimate's sheet. fn must not
// mutate the sheet.
func (r *Registry) View(ctx context.Context, estimateID string, fn func(*Sheet) error) error {
	e := r.entry(estimateID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := r.load(ctx, estimateID, e); err != nil {
		return err
	}
	return fn(e.sheet)
}

// Update runs fn with exclusive access to the estimate's sheet and persists
// the settled items when fn succeeds.
func (r *Registry) Update(ctx context.Context, estimateID string, fn func(*Sheet) error) error {
	e := r.entry(estimateID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := r.load(ctx, estimateID, e); err != nil {
		return err
	}
	if err := fn(e.sheet); err != nil {
		return err
	}
	if r.repo == nil {
		return nil
	}
	if err := r.repo.SaveItems(ctx, estimateID, e.sheet.Items()); err != nil {
		slog.Error("Failed to persist estimate", "estimate_id", estimateID, "error", err)
		// drop the cached sheet so the next call reloads the last persisted state
		e.sheet = nil
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

// Evict forgets the cached sheet of an estimate.
func (r *Registry) Evict(estimateID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sheets, estimateID)
}

func (r *Registry) entry(estimateID string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sheets[estimateID]
	if !ok {
		e = &entry{}
		r.sheets[estimateID] = e
	}
	return e
}

// forget drops e unless another caller has already replaced it.
func (r *Registry) forget(estimateID string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sheets[estimateID] == e {
		delete(r.sheets, estimateID)
	}
}

func (r *Registry) load(ctx context.Context, estimateID string, e *entry) error {
	if e.sheet != nil {
		return nil
	}
	var seed []models.LineItem
	if r.repo != nil {
		loaded, err := r.repo.LoadItems(ctx, estimateID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				r.forget(estimateID, e)
			}
			return fmt.Errorf("failed to load items: %w", err)
		}
		seed = loaded
	}
	e.sheet = New(estimateID, seed, r.opts...)
	return nil
}
