// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers such
// as the reservation service and handlers to distinguish between
// different failure scenarios. For example, ErrResourceNotFound maps to
// an HTTP 404 response, while ErrUnavailable signals that a concurrent
// caller already claimed the resource's availability and the current
// reservation attempt must be rejected.
package repository

import "errors"

// ErrResourceNotFound is returned when a resource lookup, update or
// delete targets an id that does not exist. Handlers should translate
// this into an HTTP 404 response.
var ErrResourceNotFound = errors.New("resource not found")

// ErrReservationNotFound is returned when a reservation detail lookup
// fails. Handlers should translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRecordNotFound is returned when a music record lookup, update or
// delete targets an id that does not exist.
var ErrRecordNotFound = errors.New("music record not found")

// ErrUnavailable is returned when the atomic availability claim on a
// consumable resource affects no rows, meaning the resource was already
// reserved. Exactly one of two concurrent claimants observes success;
// the other receives this error.
var ErrUnavailable = errors.New("resource unavailable")
