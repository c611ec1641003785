package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

const rideColumns = `id, student_id, captain_id, pickup_location, pickup_lat, pickup_lng,
	dropoff_location, dropoff_lat, dropoff_lng, instructions, distance_km, fare,
	estimated_duration_min, status, cancellation_reason, requested_at, accepted_at,
	arrived_at, started_at, completed_at, cancelled_at`

const openRidesLimit = 20

// statusTimestampColumn names the column stamped when a ride enters a status.
var statusTimestampColumn = map[domain.RideStatus]string{
	domain.RideStatusAccepted:  "accepted_at",
	domain.RideStatusArrived:   "arrived_at",
	domain.RideStatusStarted:   "started_at",
	domain.RideStatusCompleted: "completed_at",
	domain.RideStatusCancelled: "cancelled_at",
}

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sqlx.DB) *RideRepository {
	return &RideRepository{q: db}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, student_id, pickup_location, pickup_lat, pickup_lng,
			dropoff_location, dropoff_lat, dropoff_lng, instructions, distance_km, fare,
			estimated_duration_min, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.StudentID,
		ride.PickupLocation,
		ride.PickupLat,
		ride.PickupLng,
		ride.DropoffLocation,
		ride.DropoffLat,
		ride.DropoffLng,
		ride.Instructions,
		ride.DistanceKm,
		ride.Fare,
		ride.EstimatedDurationMin,
		ride.Status,
		ride.RequestedAt,
	)

	return mapError(err)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	var ride domain.Ride
	err := r.q.GetContext(ctx, &ride, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapError(err)
	}
	return &ride, nil
}

// GetActiveByStudent returns the student's non-terminal ride, or nil.
func (r *RideRepository) GetActiveByStudent(ctx context.Context, studentID string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides
		WHERE student_id = $1 AND status NOT IN ($2, $3)
		ORDER BY requested_at DESC LIMIT 1`

	var ride domain.Ride
	err := r.q.GetContext(ctx, &ride, query, studentID, domain.RideStatusCompleted, domain.RideStatusCancelled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return &ride, nil
}

// ListByStudent returns the student's rides, newest first.
func (r *RideRepository) ListByStudent(ctx context.Context, studentID string, limit int) ([]*domain.Ride, error) {
	return r.list(ctx, `SELECT `+rideColumns+` FROM rides WHERE student_id = $1 ORDER BY requested_at DESC LIMIT $2`, studentID, limit)
}

// ListByCaptain returns the captain's rides, newest first.
func (r *RideRepository) ListByCaptain(ctx context.Context, captainID string, limit int) ([]*domain.Ride, error) {
	return r.list(ctx, `SELECT `+rideColumns+` FROM rides WHERE captain_id = $1 ORDER BY requested_at DESC LIMIT $2`, captainID, limit)
}

// ListRequestedNear returns open requests with a pickup within radiusKm, nearest first.
func (r *RideRepository) ListRequestedNear(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Ride, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT *, %s AS pickup_distance FROM rides WHERE status = 'requested'
		) open_rides
		WHERE pickup_distance <= $3
		ORDER BY pickup_distance ASC
		LIMIT $4
	`, rideColumns, haversineSQL("pickup_lat", "pickup_lng", 1, 2))

	return r.list(ctx, query, lat, lng, radiusKm, openRidesLimit)
}

func (r *RideRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rides := []*domain.Ride{}
	if err := r.q.SelectContext(ctx, &rides, query, args...); err != nil {
		return nil, mapError(err)
	}
	return rides, nil
}

// Accept assigns a captain to a ride that is still requested. This single
// conditional statement is the only guard against two captains accepting.
func (r *RideRepository) Accept(ctx context.Context, rideID, captainID string, at time.Time) error {
	query := `UPDATE rides SET captain_id = $1, status = 'accepted', accepted_at = $2 WHERE id = $3 AND status = 'requested'`

	result, err := r.q.ExecContext(ctx, query, captainID, at, rideID)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}

	if rowsAffected == 0 {
		return repository.ErrStaleState
	}

	return nil
}

// UpdateStatus moves a ride from one status to another and stamps the
// matching timestamp column.
func (r *RideRepository) UpdateStatus(ctx context.Context, rideID string, from, to domain.RideStatus, reason string, at time.Time) error {
	column, ok := statusTimestampColumn[to]
	if !ok {
		return fmt.Errorf("no timestamp column for ride status %q", to)
	}

	query := fmt.Sprintf(`UPDATE rides SET status = $1, %s = $2 WHERE id = $3 AND status = $4`, column)
	args := []any{to, at, rideID, from}
	if to == domain.RideStatusCancelled && reason != "" {
		query = fmt.Sprintf(`UPDATE rides SET status = $1, %s = $2, cancellation_reason = $5 WHERE id = $3 AND status = $4`, column)
		args = append(args, reason)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}

	if rowsAffected == 0 {
		return repository.ErrStaleState
	}

	return nil
}

var _ repository.RideRepository = (*RideRepository)(nil)
