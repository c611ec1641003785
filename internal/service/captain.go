package service

import (
	"context"
	"errors"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

// CaptainService handles captain availability.
type CaptainService struct {
	captainRepo repository.CaptainRepository
	userRepo    repository.UserRepository
}

// NewCaptainService creates a new CaptainService.
func NewCaptainService(captainRepo repository.CaptainRepository, userRepo repository.UserRepository) *CaptainService {
	return &CaptainService{
		captainRepo: captainRepo,
		userRepo:    userRepo,
	}
}

// SetOnline marks a captain online or offline. Only captains approved to
// drive may go online; going offline is always allowed.
func (s *CaptainService) SetOnline(ctx context.Context, captainID string, online bool) error {
	if captainID == "" {
		return ErrInvalidUserID
	}

	if online {
		captain, err := s.userRepo.GetByID(ctx, captainID)
		if err != nil {
			return err
		}
		if !captain.CanDrive() {
			return ErrCaptainNotEligible
		}
	}

	return s.captainRepo.SetStatus(ctx, captainID, online)
}

// UpdateLocationRequest contains the parameters for updating captain location.
type UpdateLocationRequest struct {
	CaptainID string
	Lat       float64
	Lng       float64
}

// UpdateLocation records the captain's latest position.
func (s *CaptainService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) error {
	if req.CaptainID == "" {
		return ErrInvalidUserID
	}

	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return ErrInvalidLocation
	}

	return s.captainRepo.UpdateLocation(ctx, req.CaptainID, req.Lat, req.Lng)
}

// GetAvailability returns the captain's current availability. A captain who
// has never reported is offline with no position.
func (s *CaptainService) GetAvailability(ctx context.Context, captainID string) (*domain.CaptainAvailability, error) {
	if captainID == "" {
		return nil, ErrInvalidUserID
	}

	availability, err := s.captainRepo.GetAvailability(ctx, captainID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.CaptainAvailability{CaptainID: captainID}, nil
	}
	return availability, err
}
