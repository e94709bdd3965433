package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/reservations/internal/domain"
	"github.com/bookhive/reservations/internal/model"
	"github.com/bookhive/reservations/internal/repository"
)

// ResourceCatalog is the persistence surface the resource CRUD
// handlers need. It is implemented by repository.ResourceRepo and by
// in-memory fakes in tests.
type ResourceCatalog interface {
	ListByDomain(ctx context.Context, domainKey string) ([]*model.Resource, error)
	SearchByName(ctx context.Context, domainKey, name string) ([]*model.Resource, bool, error)
	SearchByMake(ctx context.Context, domainKey, mk string) ([]*model.Resource, bool, error)
	FilterByYear(ctx context.Context, domainKey string, year int32) ([]*model.Resource, error)
	Create(ctx context.Context, res *model.Resource) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Resource, error)
}

// ResourceHandler serves the administrative and browse CRUD around
// resources: list with optional search/filter, create and delete. One
// handler instance serves one domain; the router registers it once per
// descriptor.
type ResourceHandler struct {
	Dom     domain.Descriptor
	Catalog ResourceCatalog
}

// NewResourceHandler constructs a ResourceHandler for one domain.
func NewResourceHandler(dom domain.Descriptor, catalog ResourceCatalog) *ResourceHandler {
	if catalog == nil {
		panic("nil catalog passed to NewResourceHandler")
	}
	return &ResourceHandler{Dom: dom, Catalog: catalog}
}

// List handles GET /v1/<route>. Without query parameters it returns
// every resource of the domain. With ?name= or ?make= it searches the
// respective column case-insensitively; when nothing matches exactly,
// the full list is returned together with a "nothing found" message,
// mirroring the original redirect-to-index behavior. With ?year= it
// filters by manufacturing year (vehicle domain), again falling back to
// the full list plus a message when nothing matches.
func (h *ResourceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if name := c.QueryParam("name"); name != "" {
		return h.searchResponse(c, name, h.Catalog.SearchByName)
	}
	if mk := c.QueryParam("make"); mk != "" {
		return h.searchResponse(c, mk, h.Catalog.SearchByMake)
	}

	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err := strconv.ParseInt(yearStr, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		items, err := h.Catalog.FilterByYear(ctx, h.Dom.Key, int32(year))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if len(items) == 0 {
			all, err := h.Catalog.ListByDomain(ctx, h.Dom.Key)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}
			return c.JSON(http.StatusOK, echo.Map{
				"items":   all,
				"message": fmt.Sprintf("No %ss found manufactured in %d.", h.Dom.ResourceNoun, year),
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}

	items, err := h.Catalog.ListByDomain(ctx, h.Dom.Key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// searchResponse runs one search column against a term and renders the
// result, falling back to the full domain list with a "nothing found"
// message when no row matches the term exactly.
func (h *ResourceHandler) searchResponse(c echo.Context, term string, search func(ctx context.Context, domainKey, term string) ([]*model.Resource, bool, error)) error {
	ctx := c.Request().Context()
	items, exact, err := search(ctx, h.Dom.Key, term)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !exact {
		all, err := h.Catalog.ListByDomain(ctx, h.Dom.Key)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"items":   all,
			"message": fmt.Sprintf("No %s found matching '%s'.", h.Dom.ResourceNoun, term),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /v1/<route>. It is the administrative create
// path; resources start out available.
func (h *ResourceHandler) Create(c echo.Context) error {
	var body struct {
		Name     string  `json:"name"`
		Make     *string `json:"make"`
		Model    *string `json:"model"`
		Year     *int32  `json:"year"`
		Kind     *string `json:"kind"`
		Age      *int32  `json:"age"`
		Capacity *int32  `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	res := &model.Resource{
		Domain:   h.Dom.Key,
		Name:     body.Name,
		Make:     body.Make,
		Model:    body.Model,
		Year:     body.Year,
		Kind:     body.Kind,
		Age:      body.Age,
		Capacity: body.Capacity,
	}
	if err := h.Catalog.Create(c.Request().Context(), res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

// Delete handles DELETE /v1/<route>/:id. Dependent reservations are
// removed with the resource through the cascade foreign key.
func (h *ResourceHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	ctx := c.Request().Context()
	// Resolve the id first so a vehicle route cannot delete a pet.
	res, err := h.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": h.Dom.ResourceNoun + " not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.Domain != h.Dom.Key {
		return c.JSON(http.StatusNotFound, echo.Map{"error": h.Dom.ResourceNoun + " not found"})
	}
	if err := h.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": h.Dom.ResourceNoun + " not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
