package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookhive/reservations/internal/model"
)

// RecordRepo provides CRUD access to the music_records catalog.
// Records are plain inventory: unlike resources they have no
// availability flag, no dependent reservations, and a full update
// path.
type RecordRepo struct {
	db *sql.DB
}

// NewRecordRepo constructs a RecordRepo with the given DB handle.
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

const recordColumns = `id, artist, album, genre, price_cents, stock_quantity, created_at, updated_at`

// List returns all music records ordered by id.
func (r *RecordRepo) List(ctx context.Context) ([]*model.MusicRecord, error) {
	const q = `SELECT ` + recordColumns + ` FROM music_records ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.MusicRecord, 0)
	for rows.Next() {
		var rec model.MusicRecord
		if err := rows.Scan(&rec.ID, &rec.Artist, &rec.Album, &rec.Genre,
			&rec.PriceCents, &rec.StockQuantity, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves one music record, returning ErrRecordNotFound when
// the id does not exist.
func (r *RecordRepo) GetByID(ctx context.Context, id uint64) (*model.MusicRecord, error) {
	const q = `SELECT ` + recordColumns + ` FROM music_records WHERE id = ?`
	var rec model.MusicRecord
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.Artist, &rec.Album, &rec.Genre,
		&rec.PriceCents, &rec.StockQuantity, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new record and reads the row back so the generated
// ID and timestamps are populated.
func (r *RecordRepo) Create(ctx context.Context, rec *model.MusicRecord) error {
	const q = `INSERT INTO music_records (artist, album, genre, price_cents, stock_quantity)
	           VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, rec.Artist, rec.Album, rec.Genre, rec.PriceCents, rec.StockQuantity)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)

	created, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	*rec = *created
	return nil
}

// Update overwrites all mutable fields of an existing record. It
// returns ErrRecordNotFound when the id does not exist.
func (r *RecordRepo) Update(ctx context.Context, rec *model.MusicRecord) error {
	const q = `UPDATE music_records
	           SET artist = ?, album = ?, genre = ?, price_cents = ?, stock_quantity = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		rec.Artist, rec.Album, rec.Genre, rec.PriceCents, rec.StockQuantity, rec.ID); err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for a no-op update,
	// so confirm existence with a read-back instead.
	updated, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	*rec = *updated
	return nil
}

// Delete removes a record by id, returning ErrRecordNotFound when
// nothing was deleted.
func (r *RecordRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM music_records WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
