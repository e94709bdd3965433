package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/reservations/internal/domain"
	"github.com/bookhive/reservations/internal/model"
	"github.com/bookhive/reservations/internal/queue"
	"github.com/bookhive/reservations/internal/repository"
	"github.com/bookhive/reservations/internal/service"
)

// Reserver is the reservation core as seen by the HTTP layer. It is
// implemented by service.ReservationService.
type Reserver interface {
	Begin(ctx context.Context, dom domain.Descriptor, resourceID uint64) (*model.Resource, error)
	Accept(ctx context.Context, dom domain.Descriptor, resourceID uint64, draft domain.Draft) (*model.Reservation, error)
	Detail(ctx context.Context, reservationID uint64) (*model.Reservation, error)
}

// ResourceReservationLister lists the reservations accepted against a
// resource. Implemented by repository.ReservationRepo.
type ResourceReservationLister interface {
	ListByResource(ctx context.Context, resourceID uint64) ([]*model.Reservation, error)
}

// EventPublisher publishes a reservation-accepted event. Failures are
// logged and otherwise ignored.
type EventPublisher func(ctx context.Context, event queue.ReservationAcceptedEvent) error

// ReservationHandler exposes the reservation workflow of one domain:
// begin (resource snapshot), accept (create the reservation) and the
// per-resource reservation listing. Detail is domain-independent and
// lives on the same handler.
type ReservationHandler struct {
	Dom     domain.Descriptor
	Svc     Reserver
	Lister  ResourceReservationLister
	Publish EventPublisher
}

// NewReservationHandler constructs a ReservationHandler for one
// domain. publish may be nil to disable event publishing (tests).
func NewReservationHandler(dom domain.Descriptor, svc Reserver, lister ResourceReservationLister, publish EventPublisher) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Dom: dom, Svc: svc, Lister: lister, Publish: publish}
}

// Begin handles GET /v1/<route>/:id. It returns a snapshot of the
// resource a caller wants to reserve, or 404 when it does not exist in
// this domain. The availability in the snapshot is advisory; Accept
// re-checks it.
func (h *ReservationHandler) Begin(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	res, err := h.Svc.Begin(c.Request().Context(), h.Dom, id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Accept handles POST /v1/<route>/:id/<reservation-noun>s. It binds
// the draft, runs the reservation core and maps the outcome:
// 404 when the resource is absent, 400 for duration/field rejections,
// 409 when availability is already consumed, 201 with the created
// reservation on success.
func (h *ReservationHandler) Accept(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	var draft domain.Draft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	reservation, err := h.Svc.Accept(ctx, h.Dom, id, draft)
	if err != nil {
		return h.mapError(c, err)
	}

	if h.Publish != nil {
		event := queue.ReservationAcceptedEvent{
			ReservationID: reservation.ID,
			Domain:        h.Dom.Key,
			ResourceID:    reservation.ResourceID,
			CustomerName:  reservation.CustomerName,
			AcceptedAt:    reservation.CreatedAt.UTC().Format(time.RFC3339),
		}
		if reservation.Resource != nil {
			event.ResourceName = reservation.Resource.Name
		}
		if err := h.Publish(ctx, event); err != nil {
			log.Printf("reservation accepted event not published: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"item": reservation})
}

// Detail handles GET /v1/reservations/:id. The response carries the
// reservation with its resource attached, so callers need no second
// round trip.
func (h *ReservationHandler) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	reservation, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": reservation})
}

// ListForResource handles GET /v1/<route>/:id/<reservation-noun>s. It
// returns the reservations accepted against one resource, newest
// first. Repeatable domains accumulate entries here; consumable
// domains have at most one.
func (h *ReservationHandler) ListForResource(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	ctx := c.Request().Context()
	// Resolve the resource first so absent ids get a 404 rather than
	// an empty list.
	if _, err := h.Svc.Begin(ctx, h.Dom, id); err != nil {
		return h.mapError(c, err)
	}
	items, err := h.Lister.ListByResource(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// mapError translates core errors into HTTP responses. Business
// rejections carry their reason so clients can react without parsing
// the message.
func (h *ReservationHandler) mapError(c echo.Context, err error) error {
	if rej, ok := service.AsRejection(err); ok {
		status := http.StatusBadRequest
		if rej.Reason == service.ReasonUnavailable {
			status = http.StatusConflict
		}
		return c.JSON(status, echo.Map{"error": rej.Message, "reason": string(rej.Reason)})
	}
	switch {
	case errors.Is(err, repository.ErrResourceNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": h.Dom.ResourceNoun + " not found"})
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
