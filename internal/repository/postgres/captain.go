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

// CaptainRepository is a PostgreSQL implementation of repository.CaptainRepository.
type CaptainRepository struct {
	q Querier
}

// NewCaptainRepository creates a new PostgreSQL captain repository.
func NewCaptainRepository(db *sqlx.DB) *CaptainRepository {
	return &CaptainRepository{q: db}
}

// SetStatus upserts the captain's online flag.
func (r *CaptainRepository) SetStatus(ctx context.Context, captainID string, online bool) error {
	query := `
		INSERT INTO captain_availability (captain_id, is_online, last_seen)
		VALUES ($1, $2, $3)
		ON CONFLICT (captain_id) DO UPDATE
		SET is_online = EXCLUDED.is_online, last_seen = EXCLUDED.last_seen
	`

	_, err := r.q.ExecContext(ctx, query, captainID, online, time.Now())
	return mapError(err)
}

// UpdateLocation upserts the captain's last known position.
func (r *CaptainRepository) UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error {
	query := `
		INSERT INTO captain_availability (captain_id, lat, lng, last_seen)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (captain_id) DO UPDATE
		SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, last_seen = EXCLUDED.last_seen
	`

	_, err := r.q.ExecContext(ctx, query, captainID, lat, lng, time.Now())
	return mapError(err)
}

// GetAvailability retrieves the captain's availability row.
func (r *CaptainRepository) GetAvailability(ctx context.Context, captainID string) (*domain.CaptainAvailability, error) {
	query := `SELECT captain_id, lat, lng, is_online, last_seen FROM captain_availability WHERE captain_id = $1`

	var availability domain.CaptainAvailability
	if err := r.q.GetContext(ctx, &availability, query, captainID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapError(err)
	}
	return &availability, nil
}

// FindAvailableNear returns online, KYC-approved, active captains with a known
// position within radiusKm of (lat, lng), nearest first.
func (r *CaptainRepository) FindAvailableNear(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.NearbyCaptain, error) {
	query := fmt.Sprintf(`
		SELECT captain_id, name, phone, lat, lng, distance_km FROM (
			SELECT ca.captain_id, u.name, u.phone, ca.lat, ca.lng, %s AS distance_km
			FROM captain_availability ca
			JOIN users u ON u.id = ca.captain_id
			WHERE ca.is_online
				AND u.role = 'captain'
				AND u.kyc_status = 'approved'
				AND u.is_active
				AND ca.lat IS NOT NULL
				AND ca.lng IS NOT NULL
		) nearby
		WHERE distance_km <= $3
		ORDER BY distance_km ASC
		LIMIT $4
	`, haversineSQL("ca.lat", "ca.lng", 1, 2))

	captains := []domain.NearbyCaptain{}
	if err := r.q.SelectContext(ctx, &captains, query, lat, lng, radiusKm, limit); err != nil {
		return nil, mapError(err)
	}
	return captains, nil
}

var _ repository.CaptainRepository = (*CaptainRepository)(nil)
