package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/estimator/internal/models"
	"github.com/mmynk/estimator/internal/storage"
)

// LoadItems retrieves the line items of an estimate in display order.
func (s *SQLiteStore) LoadItems(ctx context.Context, estimateID string) ([]models.LineItem, error) {
	if _, err := s.GetEstimate(ctx, estimateID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, quantity, unit, unit_price, category, formula, total_price, vendor_name
		FROM line_items
		WHERE estimate_id = ?
		ORDER BY position
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	var out []models.LineItem
	for rows.Next() {
		item := models.LineItem{EstimateID: estimateID}
		var category string
		err := rows.Scan(
			&item.ID,
			&item.Description,
			&item.Quantity,
			&item.Unit,
			&item.UnitPrice,
			&category,
			&item.Formula,
			&item.TotalPrice,
			&item.VendorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		item.Category = models.Category(category)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return out, nil
}

// SaveItems replaces every line item of the estimate, keeping the given order.
func (s *SQLiteStore) SaveItems(ctx context.Context, estimateID string, items []models.LineItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE estimates SET updated_at = ? WHERE id = ?",
		time.Now().Unix(), estimateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update estimate: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, estimateID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE estimate_id = ?", estimateID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO line_items (
			estimate_id, id, position, description, quantity, unit,
			unit_price, category, formula, total_price, vendor_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		_, err := stmt.ExecContext(ctx,
			estimateID,
			item.ID,
			i,
			item.Description,
			item.Quantity.String(),
			item.Unit,
			item.UnitPrice.String(),
			string(item.Category),
			item.Formula,
			item.TotalPrice.String(),
			item.VendorName,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
