package model

import "time"

// Reservation is the dependent record created when a reservation
// request is accepted against a Resource: a test-drive booking, a
// party-hall booking or a pet adoption. Rows are foreign-keyed to
// resources(id) with ON DELETE CASCADE, so deleting a resource also
// removes its reservations. Reservations are never mutated after
// creation; there is no update path.
//
// Fields:
//  ID              – primary key identifier, assigned on insert.
//  ResourceID      – resource the reservation was accepted against.
//  Domain          – domain key, copied from the resource at accept time.
//  CustomerName    – name of the customer or adopter.
//  ContactNumber   – phone number (booking domains).
//  Email           – adopter e-mail (pet domain).
//  Address         – adopter address (pet domain).
//  DurationMinutes – booking duration (nil in the pet domain).
//  CreatedAt       – creation timestamp.
//  Resource        – parent resource, eager-loaded on detail reads.
type Reservation struct {
	ID              uint64    `json:"id"`                         // reservations.id
	ResourceID      uint64    `json:"resource_id"`                // reservations.resource_id
	Domain          string    `json:"domain"`                     // reservations.domain
	CustomerName    string    `json:"customer_name"`              // reservations.customer_name
	ContactNumber   *string   `json:"contact_number,omitempty"`   // reservations.contact_number (nullable)
	Email           *string   `json:"email,omitempty"`            // reservations.email (nullable)
	Address         *string   `json:"address,omitempty"`          // reservations.address (nullable)
	DurationMinutes *int32    `json:"duration_minutes,omitempty"` // reservations.duration_minutes (nullable)
	CreatedAt       time.Time `json:"created_at"`                 // reservations.created_at

	// Resource carries the parent resource when the reservation is read
	// through the detail path. It is nil on bare inserts.
	Resource *Resource `json:"resource,omitempty"`
}
