package domain

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		key       string
		wantOK    bool
		wantRoute string
	}{
		{Vehicle, true, "vehicles"},
		{PartyHall, true, "party-halls"},
		{Pet, true, "pets"},
		{"cinema", false, ""},
		{"", false, ""},
	}
	for _, tc := range tests {
		d, ok := Lookup(tc.key)
		if ok != tc.wantOK {
			t.Errorf("Lookup(%q) ok = %v, want %v", tc.key, ok, tc.wantOK)
			continue
		}
		if ok && d.Route != tc.wantRoute {
			t.Errorf("Lookup(%q).Route = %q, want %q", tc.key, d.Route, tc.wantRoute)
		}
	}
}

func TestAllIsStable(t *testing.T) {
	first := All()
	second := All()
	if len(first) != 3 {
		t.Fatalf("All() returned %d descriptors, want 3", len(first))
	}
	for i := range first {
		if first[i].Key != second[i].Key {
			t.Fatalf("All() order is not stable: %q vs %q at %d", first[i].Key, second[i].Key, i)
		}
	}
}

func TestDescriptorShape(t *testing.T) {
	vehicle, _ := Lookup(Vehicle)
	if vehicle.DurationCeiling != 200 || vehicle.ConsumesAvailability {
		t.Errorf("vehicle descriptor = %+v", vehicle)
	}
	hall, _ := Lookup(PartyHall)
	if hall.DurationCeiling != 120 || hall.ConsumesAvailability {
		t.Errorf("party hall descriptor = %+v", hall)
	}
	pet, _ := Lookup(Pet)
	if pet.DurationCeiling != 0 || !pet.ConsumesAvailability {
		t.Errorf("pet descriptor = %+v", pet)
	}
	if pet.UnavailableMessage != "This pet has already been adopted" {
		t.Errorf("pet unavailable message = %q", pet.UnavailableMessage)
	}
}

func TestDurationExceededMessage(t *testing.T) {
	vehicle, _ := Lookup(Vehicle)
	if got := vehicle.DurationExceededMessage(); got != "Booking duration cannot exceed 200 minutes" {
		t.Errorf("vehicle message = %q", got)
	}
	hall, _ := Lookup(PartyHall)
	if got := hall.DurationExceededMessage(); got != "Booking duration cannot exceed 120 minutes" {
		t.Errorf("party hall message = %q", got)
	}
}

func TestValidateDraft(t *testing.T) {
	vehicle, _ := Lookup(Vehicle)
	pet, _ := Lookup(Pet)

	tests := []struct {
		name         string
		dom          Descriptor
		draft        Draft
		wantProblems int
	}{
		{
			name:  "complete booking draft",
			dom:   vehicle,
			draft: Draft{CustomerName: "John", ContactNumber: "555-0100", DurationMinutes: 60},
		},
		{
			name:         "booking missing everything",
			dom:          vehicle,
			draft:        Draft{},
			wantProblems: 3,
		},
		{
			name:         "booking with zero duration",
			dom:          vehicle,
			draft:        Draft{CustomerName: "John", ContactNumber: "555-0100"},
			wantProblems: 1,
		},
		{
			name:         "booking with negative duration",
			dom:          vehicle,
			draft:        Draft{CustomerName: "John", ContactNumber: "555-0100", DurationMinutes: -5},
			wantProblems: 1,
		},
		{
			name: "complete adoption draft",
			dom:  pet,
			draft: Draft{
				CustomerName: "Jane", ContactNumber: "555-0101",
				Email: "jane@example.com", Address: "1 Main St",
			},
		},
		{
			name:         "adoption missing contact details",
			dom:          pet,
			draft:        Draft{CustomerName: "Jane"},
			wantProblems: 3,
		},
		{
			// Adoptions have no duration field; a stray value is ignored
			// rather than rejected.
			name: "adoption ignores duration",
			dom:  pet,
			draft: Draft{
				CustomerName: "Jane", ContactNumber: "555-0101",
				Email: "jane@example.com", Address: "1 Main St",
				DurationMinutes: 999,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			problems := tc.dom.ValidateDraft(tc.draft)
			if len(problems) != tc.wantProblems {
				t.Fatalf("ValidateDraft() = %v, want %d problems", problems, tc.wantProblems)
			}
		})
	}
}
