package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel comparisons
	"strings"      // strings builds case-insensitive search patterns

	"github.com/bookhive/reservations/internal/model"
)

// ResourceRepo provides CRUD access to the resources table. Resources
// are created through the administrative create path or seed data,
// read and filtered through list endpoints, and deleted with their
// dependent reservations. Availability is only ever flipped by the
// reservation accept path (see ReservationRepo.CreateWithClaim).
type ResourceRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewResourceRepo constructs a ResourceRepo with the given DB handle.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

const resourceColumns = `id, domain, name, make, model, year, kind, age, capacity, availability, created_at, updated_at`

// scanResource reads one resources row into a model.Resource. The row
// must have been selected with resourceColumns.
func scanResource(row interface{ Scan(...any) error }) (*model.Resource, error) {
	var res model.Resource
	var mk, mdl, kind sql.NullString
	var year, age, capacity sql.NullInt32
	if err := row.Scan(
		&res.ID, &res.Domain, &res.Name,
		&mk, &mdl, &year, &kind, &age, &capacity,
		&res.Availability, &res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if mk.Valid {
		v := mk.String
		res.Make = &v
	}
	if mdl.Valid {
		v := mdl.String
		res.Model = &v
	}
	if year.Valid {
		v := year.Int32
		res.Year = &v
	}
	if kind.Valid {
		v := kind.String
		res.Kind = &v
	}
	if age.Valid {
		v := age.Int32
		res.Age = &v
	}
	if capacity.Valid {
		v := capacity.Int32
		res.Capacity = &v
	}
	return &res, nil
}

// GetByID retrieves a resource by its ID regardless of domain. It
// returns ErrResourceNotFound when no row is found.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	res, err := scanResource(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

// ListByDomain returns all resources of one domain ordered by id.
func (r *ResourceRepo) ListByDomain(ctx context.Context, domainKey string) ([]*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE domain = ? ORDER BY id`
	return r.queryResources(ctx, q, domainKey)
}

// SearchByName returns the resources of a domain whose name contains
// the given term, case-insensitively. The second return value reports
// whether any row matched the term exactly; callers use it to decide
// between showing results and a "nothing found" message.
func (r *ResourceRepo) SearchByName(ctx context.Context, domainKey, name string) ([]*model.Resource, bool, error) {
	const q = `SELECT ` + resourceColumns + `
	           FROM resources
	           WHERE domain = ? AND LOWER(name) LIKE ?
	           ORDER BY id`
	lower := strings.ToLower(name)
	out, err := r.queryResources(ctx, q, domainKey, "%"+lower+"%")
	if err != nil {
		return nil, false, err
	}
	exact := false
	for _, res := range out {
		if strings.ToLower(res.Name) == lower {
			exact = true
			break
		}
	}
	return out, exact, nil
}

// SearchByMake returns the resources of a domain whose make contains
// the given term, case-insensitively. Only the vehicle domain populates
// the make column, so other domains get an empty result. The second
// return value reports an exact match, as in SearchByName.
func (r *ResourceRepo) SearchByMake(ctx context.Context, domainKey, mk string) ([]*model.Resource, bool, error) {
	const q = `SELECT ` + resourceColumns + `
	           FROM resources
	           WHERE domain = ? AND make IS NOT NULL AND LOWER(make) LIKE ?
	           ORDER BY id`
	lower := strings.ToLower(mk)
	out, err := r.queryResources(ctx, q, domainKey, "%"+lower+"%")
	if err != nil {
		return nil, false, err
	}
	exact := false
	for _, res := range out {
		if res.Make != nil && strings.ToLower(*res.Make) == lower {
			exact = true
			break
		}
	}
	return out, exact, nil
}

// FilterByYear returns the resources of a domain manufactured in the
// given year. Only the vehicle domain populates the year column, so
// other domains simply get an empty result.
func (r *ResourceRepo) FilterByYear(ctx context.Context, domainKey string, year int32) ([]*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE domain = ? AND year = ? ORDER BY id`
	return r.queryResources(ctx, q, domainKey, year)
}

func (r *ResourceRepo) queryResources(ctx context.Context, q string, args ...any) ([]*model.Resource, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new resource. Domain and Name must be set; the
// domain-specific attribute pointers may be nil. Availability defaults
// to true in the schema. After insert the row is read back so the ID,
// availability and timestamp fields are populated.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	const qInsert = `INSERT INTO resources (domain, name, make, model, year, kind, age, capacity)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, qInsert,
		res.Domain, res.Name, res.Make, res.Model, res.Year, res.Kind, res.Age, res.Capacity)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	const qSelect = `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	created, err := scanResource(r.db.QueryRowContext(ctx, qSelect, res.ID))
	if err != nil {
		return err
	}
	*res = *created
	return nil
}

// Delete removes a resource by id. The reservations foreign key is
// declared ON DELETE CASCADE, so dependent reservations go with it; no
// orphan rows remain queryable afterwards. Returns ErrResourceNotFound
// when the id does not exist.
func (r *ResourceRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM resources WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResourceNotFound
	}
	return nil
}
