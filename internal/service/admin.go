package service

import (
	"context"
	"time"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

// AdminService handles back-office operations.
type AdminService struct {
	userRepo            repository.UserRepository
	captainRepo         repository.CaptainRepository
	paymentRepo         repository.PaymentRepository
	notificationService *NotificationService
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	captainRepo repository.CaptainRepository,
	paymentRepo repository.PaymentRepository,
	notificationService *NotificationService,
) *AdminService {
	return &AdminService{
		userRepo:            userRepo,
		captainRepo:         captainRepo,
		paymentRepo:         paymentRepo,
		notificationService: notificationService,
	}
}

// ListPendingCaptains returns captains awaiting KYC review, oldest first.
func (s *AdminService) ListPendingCaptains(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByKYCStatus(ctx, domain.RoleCaptain, domain.KYCPending)
}

// ReviewKYC approves or rejects a captain's KYC.
func (s *AdminService) ReviewKYC(ctx context.Context, captainID string, approve bool) (*domain.User, error) {
	if captainID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleCaptain {
		return nil, ErrNotACaptain
	}

	status := domain.KYCRejected
	if approve {
		status = domain.KYCApproved
	}

	if err := s.userRepo.UpdateKYCStatus(ctx, captainID, status); err != nil {
		return nil, err
	}
	user.KYCStatus = status

	// A rejected captain must not keep showing up in nearby searches.
	if !approve {
		if err := s.captainRepo.SetStatus(ctx, captainID, false); err != nil {
			return nil, err
		}
	}

	if s.notificationService != nil {
		s.notificationService.NotifyKYCReviewed(ctx, captainID, status)
	}

	return user, nil
}

// DeactivateUser soft-deactivates an account and takes captains offline.
func (s *AdminService) DeactivateUser(ctx context.Context, adminID, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	if userID == adminID {
		return ErrCannotDeactivateSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.SetActive(ctx, userID, false); err != nil {
		return err
	}

	if user.Role == domain.RoleCaptain {
		return s.captainRepo.SetStatus(ctx, userID, false)
	}
	return nil
}

// PlatformEarnings reports platform fees earned in [from, to).
func (s *AdminService) PlatformEarnings(ctx context.Context, from, to time.Time) (*domain.PlatformEarnings, error) {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, ErrInvalidDateRange
	}
	return s.paymentRepo.PlatformEarnings(ctx, from, to)
}
