package repository

import (
	"context"
	"time"

	"campusride/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride in the requested state.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetActiveByStudent returns the student's non-terminal ride.
	// Returns nil if the student has none.
	GetActiveByStudent(ctx context.Context, studentID string) (*domain.Ride, error)

	// ListByStudent returns the student's rides, newest first.
	ListByStudent(ctx context.Context, studentID string, limit int) ([]*domain.Ride, error)

	// ListByCaptain returns rides accepted by the captain, newest first.
	ListByCaptain(ctx context.Context, captainID string, limit int) ([]*domain.Ride, error)

	// ListRequestedNear returns open ride requests whose pickup is within radiusKm.
	ListRequestedNear(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Ride, error)

	// Accept assigns the captain only if the ride is still requested.
	// Returns ErrStaleState if zero rows were updated.
	Accept(ctx context.Context, rideID, captainID string, at time.Time) error

	// UpdateStatus moves a ride from one status to another, stamping the
	// matching timestamp column. Returns ErrStaleState if the ride is no
	// longer in the from status.
	UpdateStatus(ctx context.Context, rideID string, from, to domain.RideStatus, reason string, at time.Time) error
}

// CaptainRepository defines the persistence operations for captain availability.
type CaptainRepository interface {
	// SetStatus upserts the captain's online flag.
	SetStatus(ctx context.Context, captainID string, online bool) error

	// UpdateLocation upserts the captain's last known position.
	UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error

	// GetAvailability retrieves the captain's availability row.
	GetAvailability(ctx context.Context, captainID string) (*domain.CaptainAvailability, error)

	// FindAvailableNear returns online, approved, active captains within
	// radiusKm, nearest first, capped at limit.
	FindAvailableNear(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.NearbyCaptain, error)
}
