package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookhive/reservations/internal/model"
)

// ReservationRepo persists reservation records: test-drive bookings,
// party-hall bookings and pet adoptions. Rows reference resources(id)
// with ON DELETE CASCADE. The critical operation is CreateWithClaim,
// which commits the reservation insert and the availability flip of a
// consumable resource as one transaction so a partial application can
// never be observed.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateWithClaim inserts a reservation and, when consume is true,
// atomically claims the parent resource's availability in the same
// transaction. The claim is a conditional update checked by affected
// row count:
//
//	UPDATE resources SET availability = 0 WHERE id = ? AND availability = 1
//
// so of two concurrent callers exactly one wins; the loser gets
// ErrUnavailable (or ErrResourceNotFound when the resource row is
// gone entirely) and no reservation row. On success the generated ID
// and created_at are populated on the provided record.
func (r *ReservationRepo) CreateWithClaim(ctx context.Context, res *model.Reservation, consume bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if consume {
		const claim = `UPDATE resources SET availability = 0 WHERE id = ? AND availability = 1`
		result, err := tx.ExecContext(ctx, claim, res.ResourceID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// Distinguish a lost race from a vanished resource.
			const exists = `SELECT 1 FROM resources WHERE id = ?`
			var one int
			if err := tx.QueryRowContext(ctx, exists, res.ResourceID).Scan(&one); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrResourceNotFound
				}
				return err
			}
			return ErrUnavailable
		}
	}

	const q = `INSERT INTO reservations (resource_id, domain, customer_name, contact_number, email, address, duration_minutes)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.ResourceID, res.Domain, res.CustomerName,
		res.ContactNumber, res.Email, res.Address, res.DurationMinutes)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Query back the created_at default before committing.
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns a single reservation with its parent resource
// eager-loaded, so callers see the resource's current attributes
// without a second round trip. It returns ErrReservationNotFound when
// the id does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT r.id, r.resource_id, r.domain, r.customer_name,
	                  r.contact_number, r.email, r.address, r.duration_minutes, r.created_at,
	                  s.id, s.domain, s.name, s.make, s.model, s.year, s.kind, s.age, s.capacity,
	                  s.availability, s.created_at, s.updated_at
	           FROM reservations r
	           JOIN resources s ON s.id = r.resource_id
	           WHERE r.id = ?`
	var res model.Reservation
	var parent model.Resource
	var contact, email, address sql.NullString
	var duration sql.NullInt32
	var mk, mdl, kind sql.NullString
	var year, age, capacity sql.NullInt32
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.ResourceID, &res.Domain, &res.CustomerName,
		&contact, &email, &address, &duration, &res.CreatedAt,
		&parent.ID, &parent.Domain, &parent.Name, &mk, &mdl, &year, &kind, &age, &capacity,
		&parent.Availability, &parent.CreatedAt, &parent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if contact.Valid {
		v := contact.String
		res.ContactNumber = &v
	}
	if email.Valid {
		v := email.String
		res.Email = &v
	}
	if address.Valid {
		v := address.String
		res.Address = &v
	}
	if duration.Valid {
		v := duration.Int32
		res.DurationMinutes = &v
	}
	if mk.Valid {
		v := mk.String
		parent.Make = &v
	}
	if mdl.Valid {
		v := mdl.String
		parent.Model = &v
	}
	if year.Valid {
		v := year.Int32
		parent.Year = &v
	}
	if kind.Valid {
		v := kind.String
		parent.Kind = &v
	}
	if age.Valid {
		v := age.Int32
		parent.Age = &v
	}
	if capacity.Valid {
		v := capacity.Int32
		parent.Capacity = &v
	}
	res.Resource = &parent
	return &res, nil
}

// ListByResource returns the reservations accepted against one
// resource ordered newest first. Used by repeatable domains where
// bookings accumulate.
func (r *ReservationRepo) ListByResource(ctx context.Context, resourceID uint64) ([]*model.Reservation, error) {
	const q = `SELECT id, resource_id, domain, customer_name, contact_number, email, address, duration_minutes, created_at
	           FROM reservations
	           WHERE resource_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		var contact, email, address sql.NullString
		var duration sql.NullInt32
		if err := rows.Scan(
			&res.ID, &res.ResourceID, &res.Domain, &res.CustomerName,
			&contact, &email, &address, &duration, &res.CreatedAt,
		); err != nil {
			return nil, err
		}
		if contact.Valid {
			v := contact.String
			res.ContactNumber = &v
		}
		if email.Valid {
			v := email.String
			res.Email = &v
		}
		if address.Valid {
			v := address.String
			res.Address = &v
		}
		if duration.Valid {
			v := duration.Int32
			res.DurationMinutes = &v
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByResource reports how many reservations reference a resource.
// Used in tests and diagnostics to verify the cascade delete leaves no
// orphan rows.
func (r *ReservationRepo) CountByResource(ctx context.Context, resourceID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations WHERE resource_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, resourceID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
