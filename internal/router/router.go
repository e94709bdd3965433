package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/bookhive/reservations/internal/domain"
	"github.com/bookhive/reservations/internal/handler"
)

// RegisterRoutes registers routes that carry no middleware on the
// provided Echo instance. Currently it exposes only a health check,
// which load balancers and monitoring systems use to verify that the
// service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// DomainHandlers bundles the handlers of one reservation domain for
// registration. The same handler types serve every domain; only the
// descriptor differs.
type DomainHandlers struct {
	Dom          domain.Descriptor
	Resources    *handler.ResourceHandler
	Reservations *handler.ReservationHandler
}

// RegisterAPI registers the versioned API under /v1. Each domain
// contributes the same route shape:
//
//	GET    /v1/<route>                 list (with ?name= search, ?year= filter)
//	POST   /v1/<route>                 administrative create
//	GET    /v1/<route>/:id             begin-reservation snapshot
//	DELETE /v1/<route>/:id             delete with cascading reservations
//	POST   /v1/<route>/:id/<noun>s     accept a reservation request
//	GET    /v1/<route>/:id/<noun>s     reservations accepted for the resource
//
// plus the shared detail lookup GET /v1/reservations/:id. listCache
// wraps the browse endpoints; pass nil to skip caching.
func RegisterAPI(e *echo.Echo, domains []DomainHandlers, records *handler.RecordHandler, listCache echo.MiddlewareFunc) {
	v1 := e.Group("/v1")

	detailRegistered := false
	for _, d := range domains {
		g := v1.Group("/" + d.Dom.Route)
		if listCache != nil {
			g.GET("", d.Resources.List, listCache)
		} else {
			g.GET("", d.Resources.List)
		}
		g.POST("", d.Resources.Create)
		g.GET("/:id", d.Reservations.Begin)
		g.DELETE("/:id", d.Resources.Delete)

		// Route segment for the dependent records, e.g. /bookings or /adoptions.
		noun := "/" + d.Dom.ReservationNoun + "s"
		g.POST("/:id"+noun, d.Reservations.Accept)
		g.GET("/:id"+noun, d.Reservations.ListForResource)

		// The detail lookup is domain-independent; register it once
		// with the first handler, which serves any reservation id.
		if !detailRegistered {
			v1.GET("/reservations/:id", d.Reservations.Detail)
			detailRegistered = true
		}
	}

	if records != nil {
		v1.GET("/records", records.List)
		v1.POST("/records", records.Create)
		v1.GET("/records/:id", records.Get)
		v1.PUT("/records/:id", records.Update)
		v1.DELETE("/records/:id", records.Delete)
	}
}
