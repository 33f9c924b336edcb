package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// validTransitions holds every legal status edge. The lifecycle is
// one-directional: pending -> confirmed -> completed, with cancellation
// reachable from pending or confirmed. Nothing re-enters pending and the
// terminal states accept no edges, same-state included.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValidStatus reports whether s names a requestable target status.
// pending is the creation-only state and can never be requested.
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the edge from -> to is legal.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition can leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BookingRating is a one-time rating attached to a completed booking.
type BookingRating struct {
	Score   float64 `bson:"score" json:"score"`
	Comment string  `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Booking binds a client, a service and the worker owning that service.
// WorkerID is snapshotted from the service at creation time so authorization
// stays stable even if the service's owner later changes.
type Booking struct {
	ID        string         `bson:"id" json:"id"`
	ServiceID string         `bson:"service_id" json:"service_id"`
	ClientID  string         `bson:"client_id" json:"client_id"`
	WorkerID  string         `bson:"worker_id" json:"worker_id"`
	Status    BookingStatus  `bson:"status" json:"status"`
	Date      time.Time      `bson:"date" json:"date"`
	Note      string         `bson:"note,omitempty" json:"note,omitempty"`
	Rating    *BookingRating `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

// BookingView is a booking enriched with the joined service summary and the
// counterpart's contact fields, as returned by the listing endpoints.
type BookingView struct {
	Booking     `bson:",inline"`
	Service     ServiceSummary `bson:"service" json:"service"`
	Counterpart PublicUser     `bson:"counterpart" json:"counterpart"`
}
