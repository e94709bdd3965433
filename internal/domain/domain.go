// Package domain describes the reservation domains served by the
// application. The original system shipped one copy-pasted controller
// per domain (test drives, party halls, pet adoptions); here a single
// Descriptor per domain drives the shared reservation service and
// handlers instead.
package domain

import "fmt"

// Domain keys stored in the resources.domain and reservations.domain
// columns and used to look descriptors up.
const (
	Vehicle   = "vehicle"
	PartyHall = "party_hall"
	Pet       = "pet"
)

// Descriptor captures everything about a domain the reservation flow
// needs to vary on: how long a booking may last, whether accepting a
// reservation consumes the resource's availability, and which draft
// fields the customer must supply.
type Descriptor struct {
	Key             string // domain key, matches the DB domain columns
	Route           string // URL path segment for the resource collection
	ResourceNoun    string // human noun for the resource ("vehicle", "party hall", "pet")
	ReservationNoun string // human noun for the dependent record ("booking", "adoption")

	// DurationCeiling is the maximum accepted duration_minutes for a
	// draft. Zero means the domain has no duration field at all.
	DurationCeiling int32

	// ConsumesAvailability marks one-time domains: accepting a
	// reservation flips the resource's availability false exactly once
	// and it never reverts. Repeatable domains accumulate reservations
	// against the same resource without touching availability.
	ConsumesAvailability bool

	// UnavailableMessage is shown when a reservation is attempted
	// against a resource whose availability is already false.
	UnavailableMessage string
}

// Draft is the customer-supplied payload of a reservation request.
// Which fields are required depends on the domain; ValidateDraft
// enforces that.
type Draft struct {
	CustomerName    string `json:"customer_name"`
	ContactNumber   string `json:"contact_number"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	DurationMinutes int32  `json:"duration_minutes"`
}

var descriptors = map[string]Descriptor{
	Vehicle: {
		Key:                  Vehicle,
		Route:                "vehicles",
		ResourceNoun:         "vehicle",
		ReservationNoun:      "booking",
		DurationCeiling:      200,
		ConsumesAvailability: false,
		UnavailableMessage:   "The selected vehicle is not available",
	},
	PartyHall: {
		Key:                  PartyHall,
		Route:                "party-halls",
		ResourceNoun:         "party hall",
		ReservationNoun:      "booking",
		DurationCeiling:      120,
		ConsumesAvailability: false,
		UnavailableMessage:   "The selected party hall is not available",
	},
	Pet: {
		Key:                  Pet,
		Route:                "pets",
		ResourceNoun:         "pet",
		ReservationNoun:      "adoption",
		DurationCeiling:      0,
		ConsumesAvailability: true,
		UnavailableMessage:   "This pet has already been adopted",
	},
}

// All returns the descriptors of every configured domain in a stable
// order suitable for route registration.
func All() []Descriptor {
	return []Descriptor{descriptors[Vehicle], descriptors[PartyHall], descriptors[Pet]}
}

// Lookup returns the descriptor for the given domain key. The second
// return value reports whether the key is known.
func Lookup(key string) (Descriptor, bool) {
	d, ok := descriptors[key]
	return d, ok
}

// DurationExceededMessage renders the rejection message for a draft
// whose duration is above the domain's ceiling.
func (d Descriptor) DurationExceededMessage() string {
	return fmt.Sprintf("Booking duration cannot exceed %d minutes", d.DurationCeiling)
}

// ValidateDraft checks domain-specific field presence on a draft and
// returns the list of human-readable problems. An empty slice means
// the draft is acceptable. The duration ceiling is checked separately
// (and earlier) by the reservation service, matching the contract that
// duration rejection takes precedence over field validation.
func (d Descriptor) ValidateDraft(draft Draft) []string {
	var problems []string
	if draft.CustomerName == "" {
		problems = append(problems, "customer_name is required")
	}
	if d.ConsumesAvailability {
		// Adoption domains identify the adopter by contact details
		// rather than a booking duration.
		if draft.Email == "" {
			problems = append(problems, "email is required")
		}
		if draft.ContactNumber == "" {
			problems = append(problems, "contact_number is required")
		}
		if draft.Address == "" {
			problems = append(problems, "address is required")
		}
		return problems
	}
	if draft.ContactNumber == "" {
		problems = append(problems, "contact_number is required")
	}
	if draft.DurationMinutes <= 0 {
		problems = append(problems, "duration_minutes must be positive")
	}
	return problems
}
