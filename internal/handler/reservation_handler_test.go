package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/reservations/internal/domain"
	"github.com/bookhive/reservations/internal/model"
	"github.com/bookhive/reservations/internal/queue"
	"github.com/bookhive/reservations/internal/repository"
	"github.com/bookhive/reservations/internal/service"
)

// fakeReserver implements Reserver with injectable behavior per test.
type fakeReserver struct {
	begin  func(dom domain.Descriptor, id uint64) (*model.Resource, error)
	accept func(dom domain.Descriptor, id uint64, draft domain.Draft) (*model.Reservation, error)
	detail func(id uint64) (*model.Reservation, error)
}

func (f *fakeReserver) Begin(_ context.Context, dom domain.Descriptor, id uint64) (*model.Resource, error) {
	return f.begin(dom, id)
}

func (f *fakeReserver) Accept(_ context.Context, dom domain.Descriptor, id uint64, draft domain.Draft) (*model.Reservation, error) {
	return f.accept(dom, id, draft)
}

func (f *fakeReserver) Detail(_ context.Context, id uint64) (*model.Reservation, error) {
	return f.detail(id)
}

type fakeLister struct {
	items []*model.Reservation
	err   error
}

func (f *fakeLister) ListByResource(_ context.Context, _ uint64) ([]*model.Reservation, error) {
	return f.items, f.err
}

func testDomain(t *testing.T, key string) domain.Descriptor {
	t.Helper()
	dom, ok := domain.Lookup(key)
	if !ok {
		t.Fatalf("unknown domain %q", key)
	}
	return dom
}

// doJSON runs one echo handler against a recorded request and returns
// the recorder plus the decoded response body.
func doJSON(t *testing.T, method, target, body string, params map[string]string, h echo.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestReservationBegin(t *testing.T) {
	pet := testDomain(t, domain.Pet)

	t.Run("found", func(t *testing.T) {
		svc := &fakeReserver{
			begin: func(dom domain.Descriptor, id uint64) (*model.Resource, error) {
				return &model.Resource{ID: id, Domain: dom.Key, Name: "Buddy", Availability: true}, nil
			},
		}
		h := NewReservationHandler(pet, svc, &fakeLister{}, nil)
		rec, body := doJSON(t, http.MethodGet, "/v1/pets/1", "", map[string]string{"id": "1"}, h.Begin)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		item, ok := body["item"].(map[string]any)
		if !ok || item["name"] != "Buddy" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeReserver{
			begin: func(domain.Descriptor, uint64) (*model.Resource, error) {
				return nil, repository.ErrResourceNotFound
			},
		}
		h := NewReservationHandler(pet, svc, &fakeLister{}, nil)
		rec, body := doJSON(t, http.MethodGet, "/v1/pets/999", "", map[string]string{"id": "999"}, h.Begin)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if body["error"] != "pet not found" {
			t.Fatalf("unexpected error %v", body["error"])
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		h := NewReservationHandler(pet, &fakeReserver{}, &fakeLister{}, nil)
		rec, _ := doJSON(t, http.MethodGet, "/v1/pets/abc", "", map[string]string{"id": "abc"}, h.Begin)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestReservationAccept(t *testing.T) {
	vehicle := testDomain(t, domain.Vehicle)

	t.Run("created", func(t *testing.T) {
		var published []queue.ReservationAcceptedEvent
		svc := &fakeReserver{
			accept: func(dom domain.Descriptor, id uint64, draft domain.Draft) (*model.Reservation, error) {
				return &model.Reservation{
					ID:           7,
					ResourceID:   id,
					Domain:       dom.Key,
					CustomerName: draft.CustomerName,
					CreatedAt:    time.Now().UTC(),
					Resource:     &model.Resource{ID: id, Domain: dom.Key, Name: "Toyota Camry", Availability: true},
				}, nil
			},
		}
		publish := func(_ context.Context, event queue.ReservationAcceptedEvent) error {
			published = append(published, event)
			return nil
		}
		h := NewReservationHandler(vehicle, svc, &fakeLister{}, publish)
		payload := `{"customer_name":"John Doe","contact_number":"555-0102","duration_minutes":60}`
		rec, body := doJSON(t, http.MethodPost, "/v1/vehicles/1/bookings", payload, map[string]string{"id": "1"}, h.Accept)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %v", rec.Code, body)
		}
		item := body["item"].(map[string]any)
		if item["customer_name"] != "John Doe" {
			t.Fatalf("unexpected item %v", item)
		}
		if len(published) != 1 {
			t.Fatalf("published %d events, want 1", len(published))
		}
		if published[0].ReservationID != 7 || published[0].ResourceName != "Toyota Camry" {
			t.Fatalf("unexpected event %+v", published[0])
		}
	})

	t.Run("duration rejected", func(t *testing.T) {
		svc := &fakeReserver{
			accept: func(dom domain.Descriptor, _ uint64, _ domain.Draft) (*model.Reservation, error) {
				return nil, &service.Rejection{
					Reason:  service.ReasonDurationExceeded,
					Message: dom.DurationExceededMessage(),
				}
			},
		}
		h := NewReservationHandler(vehicle, svc, &fakeLister{}, nil)
		payload := `{"customer_name":"John Doe","contact_number":"555-0102","duration_minutes":250}`
		rec, body := doJSON(t, http.MethodPost, "/v1/vehicles/1/bookings", payload, map[string]string{"id": "1"}, h.Accept)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if body["reason"] != "duration_exceeded" {
			t.Fatalf("reason = %v", body["reason"])
		}
		if body["error"] != "Booking duration cannot exceed 200 minutes" {
			t.Fatalf("error = %v", body["error"])
		}
	})

	t.Run("unavailable conflicts", func(t *testing.T) {
		pet := testDomain(t, domain.Pet)
		svc := &fakeReserver{
			accept: func(dom domain.Descriptor, _ uint64, _ domain.Draft) (*model.Reservation, error) {
				return nil, &service.Rejection{
					Reason:  service.ReasonUnavailable,
					Message: dom.UnavailableMessage,
				}
			},
		}
		h := NewReservationHandler(pet, svc, &fakeLister{}, nil)
		payload := `{"customer_name":"Jane","contact_number":"555-0101","email":"jane@example.com","address":"1 Main St"}`
		rec, body := doJSON(t, http.MethodPost, "/v1/pets/1/adoptions", payload, map[string]string{"id": "1"}, h.Accept)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		if body["error"] != "This pet has already been adopted" {
			t.Fatalf("error = %v", body["error"])
		}
		if body["reason"] != "unavailable" {
			t.Fatalf("reason = %v", body["reason"])
		}
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		svc := &fakeReserver{
			accept: func(dom domain.Descriptor, id uint64, draft domain.Draft) (*model.Reservation, error) {
				return &model.Reservation{ID: 8, ResourceID: id, Domain: dom.Key, CustomerName: draft.CustomerName}, nil
			},
		}
		publish := func(context.Context, queue.ReservationAcceptedEvent) error {
			return context.DeadlineExceeded
		}
		h := NewReservationHandler(vehicle, svc, &fakeLister{}, publish)
		payload := `{"customer_name":"John Doe","contact_number":"555-0102","duration_minutes":60}`
		rec, _ := doJSON(t, http.MethodPost, "/v1/vehicles/1/bookings", payload, map[string]string{"id": "1"}, h.Accept)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
	})

	t.Run("resource missing", func(t *testing.T) {
		svc := &fakeReserver{
			accept: func(domain.Descriptor, uint64, domain.Draft) (*model.Reservation, error) {
				return nil, repository.ErrResourceNotFound
			},
		}
		h := NewReservationHandler(vehicle, svc, &fakeLister{}, nil)
		payload := `{"customer_name":"John Doe","contact_number":"555-0102","duration_minutes":60}`
		rec, body := doJSON(t, http.MethodPost, "/v1/vehicles/999/bookings", payload, map[string]string{"id": "999"}, h.Accept)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if body["error"] != "vehicle not found" {
			t.Fatalf("error = %v", body["error"])
		}
	})
}

func TestReservationDetail(t *testing.T) {
	vehicle := testDomain(t, domain.Vehicle)

	t.Run("found with resource attached", func(t *testing.T) {
		svc := &fakeReserver{
			detail: func(id uint64) (*model.Reservation, error) {
				return &model.Reservation{
					ID:           id,
					ResourceID:   3,
					Domain:       domain.Vehicle,
					CustomerName: "John Doe",
					Resource:     &model.Resource{ID: 3, Domain: domain.Vehicle, Name: "Toyota Camry"},
				}, nil
			},
		}
		h := NewReservationHandler(vehicle, svc, &fakeLister{}, nil)
		rec, body := doJSON(t, http.MethodGet, "/v1/reservations/5", "", map[string]string{"id": "5"}, h.Detail)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		item := body["item"].(map[string]any)
		res, ok := item["resource"].(map[string]any)
		if !ok || res["name"] != "Toyota Camry" {
			t.Fatalf("resource not attached: %v", item)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeReserver{
			detail: func(uint64) (*model.Reservation, error) {
				return nil, repository.ErrReservationNotFound
			},
		}
		h := NewReservationHandler(vehicle, svc, &fakeLister{}, nil)
		rec, body := doJSON(t, http.MethodGet, "/v1/reservations/404", "", map[string]string{"id": "404"}, h.Detail)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if body["error"] != "reservation not found" {
			t.Fatalf("error = %v", body["error"])
		}
	})
}

func TestReservationListForResource(t *testing.T) {
	hall := testDomain(t, domain.PartyHall)

	t.Run("lists accepted reservations", func(t *testing.T) {
		svc := &fakeReserver{
			begin: func(dom domain.Descriptor, id uint64) (*model.Resource, error) {
				return &model.Resource{ID: id, Domain: dom.Key, Name: "Grand Ballroom", Availability: true}, nil
			},
		}
		lister := &fakeLister{items: []*model.Reservation{
			{ID: 2, ResourceID: 1, Domain: domain.PartyHall, CustomerName: "Second"},
			{ID: 1, ResourceID: 1, Domain: domain.PartyHall, CustomerName: "First"},
		}}
		h := NewReservationHandler(hall, svc, lister, nil)
		rec, body := doJSON(t, http.MethodGet, "/v1/party-halls/1/bookings", "", map[string]string{"id": "1"}, h.ListForResource)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		items := body["items"].([]any)
		if len(items) != 2 {
			t.Fatalf("got %d items, want 2", len(items))
		}
	})

	t.Run("missing resource yields 404 not empty list", func(t *testing.T) {
		svc := &fakeReserver{
			begin: func(domain.Descriptor, uint64) (*model.Resource, error) {
				return nil, repository.ErrResourceNotFound
			},
		}
		h := NewReservationHandler(hall, svc, &fakeLister{}, nil)
		rec, _ := doJSON(t, http.MethodGet, "/v1/party-halls/999/bookings", "", map[string]string{"id": "999"}, h.ListForResource)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
