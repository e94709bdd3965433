// Package service implements the reservation core: the
// validate-then-commit sequence that gates creation of a reservation
// on resource availability and domain constraints. The same service
// serves every domain; behavior differences (duration ceiling,
// availability consumption, required draft fields) come from the
// domain descriptor passed with each call.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookhive/reservations/internal/domain"
	"github.com/bookhive/reservations/internal/model"
	"github.com/bookhive/reservations/internal/repository"
)

// RejectReason classifies a business rejection so callers can react
// without parsing the message.
type RejectReason string

const (
	// ReasonDurationExceeded means the draft's duration is above the
	// domain's ceiling. Checked before availability.
	ReasonDurationExceeded RejectReason = "duration_exceeded"
	// ReasonUnavailable means the resource's availability was false at
	// the moment of the claim.
	ReasonUnavailable RejectReason = "unavailable"
	// ReasonInvalid means required draft fields are missing or malformed.
	ReasonInvalid RejectReason = "invalid"
)

// Rejection is a deterministic, caller-correctable business rule
// violation. It is an expected outcome of Accept, not an exception:
// handlers translate it into a re-rendered form or a 4xx response.
type Rejection struct {
	Reason  RejectReason
	Message string
}

func (r *Rejection) Error() string { return r.Message }

// AsRejection unwraps err into a *Rejection when it is one.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// InfraError wraps an unexpected persistence failure (store
// unreachable, call timed out). It is distinct from both not-found
// sentinels and Rejections so callers never confuse an outage with a
// business rejection. The core does not retry; retry policy belongs to
// the store.
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string { return fmt.Sprintf("%s: store failure: %v", e.Op, e.Err) }
func (e *InfraError) Unwrap() error { return e.Err }

// ResourceStore is the persistence collaborator for resources. The
// production implementation is repository.ResourceRepo.
type ResourceStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Resource, error)
}

// ReservationStore is the persistence collaborator for reservation
// records. CreateWithClaim must commit the reservation insert and the
// availability flip (when consume is true) atomically, returning
// repository.ErrUnavailable when the conditional flip affects no rows.
// The production implementation is repository.ReservationRepo.
type ReservationStore interface {
	CreateWithClaim(ctx context.Context, res *model.Reservation, consume bool) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
}

// DefaultStoreTimeout bounds every underlying store call so no
// operation blocks indefinitely. A timeout surfaces as an InfraError,
// which callers may retry.
const DefaultStoreTimeout = 5 * time.Second

// ReservationService validates and commits reservation requests. It is
// safe for concurrent use; all state lives in the stores.
type ReservationService struct {
	resources    ResourceStore
	reservations ReservationStore
	timeout      time.Duration
}

// NewReservationService constructs the service over the given stores.
// A non-positive timeout falls back to DefaultStoreTimeout.
func NewReservationService(resources ResourceStore, reservations ReservationStore, timeout time.Duration) *ReservationService {
	if resources == nil || reservations == nil {
		panic("nil store passed to NewReservationService")
	}
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &ReservationService{resources: resources, reservations: reservations, timeout: timeout}
}

// Begin looks up the resource a caller wants to reserve and returns a
// snapshot of it, or repository.ErrResourceNotFound when it is absent
// or belongs to a different domain. It has no side effects; the
// availability it reports is advisory and is re-checked at accept
// time.
func (s *ReservationService) Begin(ctx context.Context, dom domain.Descriptor, resourceID uint64) (*model.Resource, error) {
	res, err := s.findResource(ctx, dom, resourceID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Accept runs the full validate-then-commit sequence for a reservation
// request:
//
//  1. the resource must exist in the given domain (ErrResourceNotFound);
//  2. the draft duration must not exceed the domain ceiling
//     (Rejection, ReasonDurationExceeded), checked before availability;
//  3. for consumable domains the resource must currently be available
//     (Rejection, ReasonUnavailable);
//  4. required draft fields must be present (Rejection, ReasonInvalid);
//  5. the reservation insert and, for consumable domains, the
//     availability claim commit atomically; a lost race yields a
//     Rejection with ReasonUnavailable and no reservation row.
//
// On success the created reservation is returned with its assigned ID
// and the resource snapshot attached. Store failures surface as
// *InfraError, never as rejections.
func (s *ReservationService) Accept(ctx context.Context, dom domain.Descriptor, resourceID uint64, draft domain.Draft) (*model.Reservation, error) {
	res, err := s.findResource(ctx, dom, resourceID)
	if err != nil {
		return nil, err
	}

	if dom.DurationCeiling > 0 && draft.DurationMinutes > dom.DurationCeiling {
		return nil, &Rejection{Reason: ReasonDurationExceeded, Message: dom.DurationExceededMessage()}
	}
	// Advisory pre-check; the commit below re-checks atomically.
	if dom.ConsumesAvailability && !res.Availability {
		return nil, &Rejection{Reason: ReasonUnavailable, Message: dom.UnavailableMessage}
	}
	if problems := dom.ValidateDraft(draft); len(problems) > 0 {
		return nil, &Rejection{Reason: ReasonInvalid, Message: problems[0]}
	}

	reservation := draftToReservation(dom, resourceID, draft)
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.reservations.CreateWithClaim(cctx, reservation, dom.ConsumesAvailability); err != nil {
		switch {
		case errors.Is(err, repository.ErrUnavailable):
			return nil, &Rejection{Reason: ReasonUnavailable, Message: dom.UnavailableMessage}
		case errors.Is(err, repository.ErrResourceNotFound):
			return nil, repository.ErrResourceNotFound
		default:
			return nil, &InfraError{Op: "accept reservation", Err: err}
		}
	}

	if dom.ConsumesAvailability {
		res.Availability = false
	}
	reservation.Resource = res
	return reservation, nil
}

// Detail returns a reservation with its resource eager-loaded, or
// repository.ErrReservationNotFound.
func (s *ReservationService) Detail(ctx context.Context, reservationID uint64) (*model.Reservation, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.reservations.GetByID(cctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, err
		}
		return nil, &InfraError{Op: "reservation detail", Err: err}
	}
	return res, nil
}

// findResource loads a resource under the store timeout and hides
// resources of other domains behind ErrResourceNotFound, so the pet
// routes cannot see vehicles and vice versa.
func (s *ReservationService) findResource(ctx context.Context, dom domain.Descriptor, resourceID uint64) (*model.Resource, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.resources.GetByID(cctx, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, err
		}
		return nil, &InfraError{Op: "resource lookup", Err: err}
	}
	if res.Domain != dom.Key {
		return nil, repository.ErrResourceNotFound
	}
	return res, nil
}

func draftToReservation(dom domain.Descriptor, resourceID uint64, draft domain.Draft) *model.Reservation {
	reservation := &model.Reservation{
		ResourceID:   resourceID,
		Domain:       dom.Key,
		CustomerName: draft.CustomerName,
	}
	if draft.ContactNumber != "" {
		v := draft.ContactNumber
		reservation.ContactNumber = &v
	}
	if draft.Email != "" {
		v := draft.Email
		reservation.Email = &v
	}
	if draft.Address != "" {
		v := draft.Address
		reservation.Address = &v
	}
	if !dom.ConsumesAvailability {
		v := draft.DurationMinutes
		reservation.DurationMinutes = &v
	}
	return reservation
}
