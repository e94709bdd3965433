package model

import "time"

// Resource is the bookable or adoptable entity shared by every domain:
// a vehicle offered for test drives, a party hall offered for events,
// a pet offered for adoption. All three live in the same resources
// table distinguished by the Domain column; attributes that only make
// sense for one domain are nullable and represented as pointers.
//
// Fields:
//  ID           – primary key identifier.
//  Domain       – domain key ("vehicle", "party_hall", "pet").
//  Name         – display name (hall name, pet name, or vehicle label).
//  Make         – vehicle manufacturer (nil outside the vehicle domain).
//  Model        – vehicle model (nil outside the vehicle domain).
//  Year         – vehicle manufacturing year (nil outside the vehicle domain).
//  Kind         – pet species/type (nil outside the pet domain).
//  Age          – pet age in years (nil outside the pet domain).
//  Capacity     – hall guest capacity (nil outside the party hall domain).
//  Availability – whether the resource can currently accept a reservation.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Resource struct {
	ID           uint64     `json:"id"`                 // resources.id
	Domain       string     `json:"domain"`             // resources.domain
	Name         string     `json:"name"`               // resources.name
	Make         *string    `json:"make,omitempty"`     // resources.make (nullable)
	Model        *string    `json:"model,omitempty"`    // resources.model (nullable)
	Year         *int32     `json:"year,omitempty"`     // resources.year (nullable)
	Kind         *string    `json:"kind,omitempty"`     // resources.kind (nullable)
	Age          *int32     `json:"age,omitempty"`      // resources.age (nullable)
	Capacity     *int32     `json:"capacity,omitempty"` // resources.capacity (nullable)
	Availability bool       `json:"availability"`       // resources.availability
	CreatedAt    time.Time  `json:"created_at"`         // resources.created_at
	UpdatedAt    time.Time  `json:"updated_at"`         // resources.updated_at
}
