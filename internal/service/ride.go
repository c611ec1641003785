package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

const (
	defaultSearchRadiusKm = 5.0
	maxSearchRadiusKm     = 50.0
	maxNearbyCaptains     = 10
	defaultHistoryLimit   = 50
)

// FareConfig holds the tariff and captain search radius.
type FareConfig struct {
	BaseFare       float64
	PerKmRate      float64
	SearchRadiusKm float64
}

// DefaultFareConfig is the campus tariff.
func DefaultFareConfig() FareConfig {
	return FareConfig{
		BaseFare:       domain.DefaultBaseFare,
		PerKmRate:      domain.DefaultPerKmRate,
		SearchRadiusKm: defaultSearchRadiusKm,
	}
}

// RideService handles ride lifecycle operations.
type RideService struct {
	rideRepo            repository.RideRepository
	captainRepo         repository.CaptainRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
	fares               FareConfig
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	captainRepo repository.CaptainRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
	fares FareConfig,
) *RideService {
	if fares.SearchRadiusKm <= 0 {
		fares.SearchRadiusKm = defaultSearchRadiusKm
	}
	return &RideService{
		rideRepo:            rideRepo,
		captainRepo:         captainRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		fares:               fares,
	}
}

// FareQuoteRequest contains the endpoints of a prospective ride.
type FareQuoteRequest struct {
	PickupLat  float64
	PickupLng  float64
	DropoffLat float64
	DropoffLng float64
}

// FareQuote is the priced estimate for a ride.
type FareQuote struct {
	DistanceKm        float64
	Fare              float64
	EstimatedDuration int
}

// QuoteFare prices a ride without persisting anything. The distance is
// rounded to two decimals first and the fare is computed from that value,
// so a quote always matches the ride later created for the same points.
func (s *RideService) QuoteFare(req FareQuoteRequest) (*FareQuote, error) {
	if !isValidLatitude(req.PickupLat) || !isValidLongitude(req.PickupLng) {
		return nil, ErrInvalidPickupLocation
	}
	if !isValidLatitude(req.DropoffLat) || !isValidLongitude(req.DropoffLng) {
		return nil, ErrInvalidDropoffLocation
	}

	distance := domain.Round2(domain.CalculateDistance(req.PickupLat, req.PickupLng, req.DropoffLat, req.DropoffLng))

	return &FareQuote{
		DistanceKm:        distance,
		Fare:              domain.CalculateFareWith(distance, s.fares.BaseFare, s.fares.PerKmRate),
		EstimatedDuration: domain.EstimateDuration(distance),
	}, nil
}

// CreateRideRequest contains the parameters for requesting a ride.
type CreateRideRequest struct {
	StudentID       string
	PickupLocation  string
	PickupLat       float64
	PickupLng       float64
	DropoffLocation string
	DropoffLat      float64
	DropoffLng      float64
	Instructions    string
}

// CreateRideResult is the created ride and the captains who can see it.
type CreateRideResult struct {
	Ride              *domain.Ride
	AvailableCaptains []domain.NearbyCaptain
}

// RequestRide prices and persists a ride, then looks up nearby captains.
func (s *RideService) RequestRide(ctx context.Context, req CreateRideRequest) (*CreateRideResult, error) {
	if req.StudentID == "" {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(req.PickupLocation) == "" {
		return nil, ErrInvalidPickupLocation
	}
	if strings.TrimSpace(req.DropoffLocation) == "" {
		return nil, ErrInvalidDropoffLocation
	}

	quote, err := s.QuoteFare(FareQuoteRequest{
		PickupLat:  req.PickupLat,
		PickupLng:  req.PickupLng,
		DropoffLat: req.DropoffLat,
		DropoffLng: req.DropoffLng,
	})
	if err != nil {
		return nil, err
	}

	active, err := s.rideRepo.GetActiveByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveRideExists
	}

	ride := &domain.Ride{
		ID:                   uuid.New().String(),
		StudentID:            req.StudentID,
		PickupLocation:       strings.TrimSpace(req.PickupLocation),
		PickupLat:            req.PickupLat,
		PickupLng:            req.PickupLng,
		DropoffLocation:      strings.TrimSpace(req.DropoffLocation),
		DropoffLat:           req.DropoffLat,
		DropoffLng:           req.DropoffLng,
		Instructions:         strings.TrimSpace(req.Instructions),
		DistanceKm:           quote.DistanceKm,
		Fare:                 quote.Fare,
		EstimatedDurationMin: quote.EstimatedDuration,
		Status:               domain.RideStatusRequested,
		RequestedAt:          time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	// The ride exists either way; a failed lookup only hides the captain count.
	captains, err := s.captainRepo.FindAvailableNear(ctx, ride.PickupLat, ride.PickupLng, s.fares.SearchRadiusKm, maxNearbyCaptains)
	if err != nil {
		log.Printf("failed to find captains near ride %s: %v", ride.ID, err)
		captains = nil
	}

	if s.notificationService != nil {
		s.notificationService.NotifyRideRequested(ctx, ride, captains)
	}

	return &CreateRideResult{Ride: ride, AvailableCaptains: captains}, nil
}

// AcceptRide assigns the captain to a ride that is still requested.
func (s *RideService) AcceptRide(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if captainID == "" {
		return nil, ErrInvalidUserID
	}

	captain, err := s.userRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}
	if !captain.CanDrive() {
		return nil, ErrCaptainNotEligible
	}

	if err := s.rideRepo.Accept(ctx, rideID, captainID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrRideNotAvailable
		}
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyRideAccepted(ctx, ride, captain)
	}

	return ride, nil
}

// UpdateStatusRequest contains the parameters for a ride status change.
type UpdateStatusRequest struct {
	RideID             string
	UserID             string
	Status             domain.RideStatus
	CancellationReason string
}

// UpdateRideStatus moves a ride along its lifecycle on behalf of a participant.
// Only the captain drives a ride forward; either participant may cancel.
func (s *RideService) UpdateRideStatus(ctx context.Context, req UpdateStatusRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if !req.Status.IsValid() {
		return nil, ErrInvalidRideStatus
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if !ride.IsParticipant(req.UserID) {
		return nil, ErrNotRideParticipant
	}

	// Acceptance goes through AcceptRide so the conditional assignment is never bypassed.
	if req.Status == domain.RideStatusAccepted || !domain.CanTransition(ride.Status, req.Status) {
		return nil, ErrInvalidTransition
	}

	if req.Status != domain.RideStatusCancelled && req.UserID != ride.AssignedCaptain() {
		return nil, ErrCaptainOnlyTransition
	}

	reason := strings.TrimSpace(req.CancellationReason)
	if err := s.rideRepo.UpdateStatus(ctx, ride.ID, ride.Status, req.Status, reason, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	updated, err := s.rideRepo.GetByID(ctx, ride.ID)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyRideStatusChanged(ctx, updated, req.UserID)
	}

	return updated, nil
}

// GetRide returns a ride visible to the caller.
func (s *RideService) GetRide(ctx context.Context, rideID, userID string, role domain.Role) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if role != domain.RoleAdmin && !ride.IsParticipant(userID) {
		return nil, ErrNotRideParticipant
	}

	return ride, nil
}

// ListHistory returns the caller's rides, newest first.
func (s *RideService) ListHistory(ctx context.Context, userID string, role domain.Role, limit int) ([]*domain.Ride, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}

	if role == domain.RoleCaptain {
		return s.rideRepo.ListByCaptain(ctx, userID, limit)
	}
	return s.rideRepo.ListByStudent(ctx, userID, limit)
}

// ListOpenRides returns requested rides near the captain's last reported position.
func (s *RideService) ListOpenRides(ctx context.Context, captainID string) ([]*domain.Ride, error) {
	if captainID == "" {
		return nil, ErrInvalidUserID
	}

	availability, err := s.captainRepo.GetAvailability(ctx, captainID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCaptainLocationUnknown
		}
		return nil, err
	}
	if availability.Lat == nil || availability.Lng == nil {
		return nil, ErrCaptainLocationUnknown
	}

	return s.rideRepo.ListRequestedNear(ctx, *availability.Lat, *availability.Lng, s.fares.SearchRadiusKm)
}

// FindNearbyCaptains returns available captains around a point.
// A zero radius uses the configured search radius.
func (s *RideService) FindNearbyCaptains(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyCaptain, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return nil, ErrInvalidLocation
	}
	if radiusKm == 0 {
		radiusKm = s.fares.SearchRadiusKm
	}
	if radiusKm < 0 || radiusKm > maxSearchRadiusKm {
		return nil, ErrInvalidRadius
	}

	return s.captainRepo.FindAvailableNear(ctx, lat, lng, radiusKm, maxNearbyCaptains)
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
