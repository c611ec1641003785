package repository

import (
	"context"

	"campusride/internal/domain"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by lower-cased email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByKYCStatus lists users of a role awaiting or holding a KYC decision.
	ListByKYCStatus(ctx context.Context, role domain.Role, status domain.KYCStatus) ([]*domain.User, error)

	// UpdateKYCStatus records a KYC decision.
	UpdateKYCStatus(ctx context.Context, id string, status domain.KYCStatus) error

	// SetActive soft-activates or deactivates an account.
	SetActive(ctx context.Context, id string, active bool) error
}
