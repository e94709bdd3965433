package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhive/reservations/internal/model"
	"github.com/bookhive/reservations/internal/repository"
)

// RecordCatalog is the persistence surface of the music record CRUD.
// Implemented by repository.RecordRepo.
type RecordCatalog interface {
	List(ctx context.Context) ([]*model.MusicRecord, error)
	GetByID(ctx context.Context, id uint64) (*model.MusicRecord, error)
	Create(ctx context.Context, rec *model.MusicRecord) error
	Update(ctx context.Context, rec *model.MusicRecord) error
	Delete(ctx context.Context, id uint64) error
}

// RecordHandler serves the music record catalog. Records are plain
// inventory with a full update path and no reservation workflow.
type RecordHandler struct {
	Catalog RecordCatalog
}

// NewRecordHandler constructs a RecordHandler.
func NewRecordHandler(catalog RecordCatalog) *RecordHandler {
	if catalog == nil {
		panic("nil catalog passed to NewRecordHandler")
	}
	return &RecordHandler{Catalog: catalog}
}

type recordBody struct {
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	Genre         string `json:"genre"`
	PriceCents    uint32 `json:"price_cents"`
	StockQuantity uint32 `json:"stock_quantity"`
}

func (b recordBody) validate() string {
	if b.Artist == "" {
		return "artist is required"
	}
	if b.Album == "" {
		return "album is required"
	}
	return ""
}

// List handles GET /v1/records.
func (h *RecordHandler) List(c echo.Context) error {
	items, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/records/:id.
func (h *RecordHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}
	rec, err := h.Catalog.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "music record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rec})
}

// Create handles POST /v1/records.
func (h *RecordHandler) Create(c echo.Context) error {
	var body recordBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rec := &model.MusicRecord{
		Artist:        body.Artist,
		Album:         body.Album,
		Genre:         body.Genre,
		PriceCents:    body.PriceCents,
		StockQuantity: body.StockQuantity,
	}
	if err := h.Catalog.Create(c.Request().Context(), rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rec})
}

// Update handles PUT /v1/records/:id. All mutable fields are replaced.
func (h *RecordHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}
	var body recordBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rec := &model.MusicRecord{
		ID:            id,
		Artist:        body.Artist,
		Album:         body.Album,
		Genre:         body.Genre,
		PriceCents:    body.PriceCents,
		StockQuantity: body.StockQuantity,
	}
	if err := h.Catalog.Update(c.Request().Context(), rec); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "music record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rec})
}

// Delete handles DELETE /v1/records/:id.
func (h *RecordHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record id"})
	}
	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "music record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
