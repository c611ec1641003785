package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusArrived   RideStatus = "arrived"
	RideStatusStarted   RideStatus = "started"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// RideTransitions lists the statuses reachable from each non-terminal status.
var RideTransitions = map[RideStatus][]RideStatus{
	RideStatusRequested: {RideStatusAccepted, RideStatusCancelled},
	RideStatusAccepted:  {RideStatusArrived, RideStatusCancelled},
	RideStatusArrived:   {RideStatusStarted, RideStatusCancelled},
	RideStatusStarted:   {RideStatusCompleted, RideStatusCancelled},
}

// IsValid reports whether s is a known ride status.
func (s RideStatus) IsValid() bool {
	switch s {
	case RideStatusRequested, RideStatusAccepted, RideStatusArrived,
		RideStatusStarted, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// IsActive reports whether the ride still occupies its student.
func (s RideStatus) IsActive() bool {
	return s.IsValid() && !s.IsTerminal()
}

// CanTransition reports whether a ride may move from one status to another.
func CanTransition(from, to RideStatus) bool {
	for _, next := range RideTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Ride represents a ride requested by a student.
type Ride struct {
	ID                   string     `db:"id"`
	StudentID            string     `db:"student_id"`
	CaptainID            *string    `db:"captain_id"`
	PickupLocation       string     `db:"pickup_location"`
	PickupLat            float64    `db:"pickup_lat"`
	PickupLng            float64    `db:"pickup_lng"`
	DropoffLocation      string     `db:"dropoff_location"`
	DropoffLat           float64    `db:"dropoff_lat"`
	DropoffLng           float64    `db:"dropoff_lng"`
	Instructions         string     `db:"instructions"`
	DistanceKm           float64    `db:"distance_km"`
	Fare                 float64    `db:"fare"`
	EstimatedDurationMin int        `db:"estimated_duration_min"`
	Status               RideStatus `db:"status"`
	CancellationReason   string     `db:"cancellation_reason"`
	RequestedAt          time.Time  `db:"requested_at"`
	AcceptedAt           *time.Time `db:"accepted_at"`
	ArrivedAt            *time.Time `db:"arrived_at"`
	StartedAt            *time.Time `db:"started_at"`
	CompletedAt          *time.Time `db:"completed_at"`
	CancelledAt          *time.Time `db:"cancelled_at"`
}

// AssignedCaptain returns the accepting captain's id, or "" while unassigned.
func (r *Ride) AssignedCaptain() string {
	if r.CaptainID == nil {
		return ""
	}
	return *r.CaptainID
}

// IsParticipant reports whether userID is the ride's student or captain.
func (r *Ride) IsParticipant(userID string) bool {
	return userID != "" && (r.StudentID == userID || r.AssignedCaptain() == userID)
}
