package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Omersenem/dovizkuru/internal/model"
	"github.com/Omersenem/dovizkuru/internal/series"
)

// PriceRepository provides data access methods for the asset_price table.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetSeries retrieves the full cached series for an asset, ascending by date.
// Returns an empty series when nothing is cached.
func (r *PriceRepository) GetSeries(assetID string) (series.Series, error) {
	rows, err := r.db.Query(`
		SELECT date, price
		FROM asset_price
		WHERE asset_id = ?
		ORDER BY date ASC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_price table: %w", err)
	}
	defer rows.Close()

	s := series.Series{}
	for rows.Next() {
		var (
			dateStr string
			price   float64
		)
		if err := rows.Scan(&dateStr, &price); err != nil {
			return nil, fmt.Errorf("failed to scan asset_price row: %w", err)
		}
		date, err := ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		s = append(s, model.PricePoint{Date: date, Price: price})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_price table: %w", err)
	}

	return s, nil
}

// InsertPrices batch-inserts price points for an asset. Rows whose date is
// already cached are skipped, so the pre-existing entry always wins. Returns
// the number of rows actually added.
func (r *PriceRepository) InsertPrices(ctx context.Context, assetID string, points []model.PricePoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO asset_price (id, asset_id, date, price)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, pt := range points {
		res, err := stmt.ExecContext(ctx, uuid.New().String(), assetID, FormatDate(pt.Date), pt.Price)
		if err != nil {
			return 0, fmt.Errorf("failed to insert price for %s: %w", assetID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price insert: %w", err)
	}
	return added, nil
}

// GetRefreshState retrieves the refresh bookkeeping row for an asset. The
// second return value is false when the asset has never been refreshed.
func (r *PriceRepository) GetRefreshState(assetID string) (model.RefreshState, bool, error) {
	var (
		state      model.RefreshState
		lastUpdate string
		lastRecord sql.NullString
	)
	err := r.db.QueryRow(`
		SELECT asset_id, last_update, last_record_date
		FROM refresh_state
		WHERE asset_id = ?`, assetID).Scan(&state.AssetID, &lastUpdate, &lastRecord)
	if err == sql.ErrNoRows {
		return model.RefreshState{}, false, nil
	}
	if err != nil {
		return model.RefreshState{}, false, fmt.Errorf("failed to query refresh_state table: %w", err)
	}

	state.LastUpdate, err = ParseDate(lastUpdate)
	if err != nil {
		return model.RefreshState{}, false, err
	}
	if lastRecord.Valid && lastRecord.String != "" {
		state.LastRecordDate, err = ParseDate(lastRecord.String)
		if err != nil {
			return model.RefreshState{}, false, err
		}
	}
	return state, true, nil
}

// SetRefreshState upserts the refresh bookkeeping row for an asset.
func (r *PriceRepository) SetRefreshState(ctx context.Context, state model.RefreshState) error {
	var lastRecord any
	if !state.LastRecordDate.IsZero() {
		lastRecord = FormatDate(state.LastRecordDate)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_state (asset_id, last_update, last_record_date)
		VALUES (?, ?, ?)
		ON CONFLICT (asset_id) DO UPDATE SET
			last_update = excluded.last_update,
			last_record_date = excluded.last_record_date`,
		state.AssetID, FormatDate(state.LastUpdate), lastRecord)
	if err != nil {
		return fmt.Errorf("failed to upsert refresh_state: %w", err)
	}
	return nil
}
