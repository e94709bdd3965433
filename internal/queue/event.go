// Package queue defines message payloads exchanged over the message
// broker, the best-effort publisher and the background log consumer.
package queue

// ReservationAcceptedEvent is published when a reservation request is
// accepted. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationAcceptedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Domain        string `json:"domain"`
	ResourceID    uint64 `json:"resource_id"`
	ResourceName  string `json:"resource_name"`
	CustomerName  string `json:"customer_name"`
	AcceptedAt    string `json:"accepted_at"`
}
