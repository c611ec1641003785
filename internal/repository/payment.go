package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"campusride/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a pending payment, deriving captain earnings from the
	// amount and platform fee. Returns ErrDuplicate if the ride is already paid.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByRideID retrieves the payment for a ride.
	// Returns nil if the ride has no payment yet.
	GetByRideID(ctx context.Context, rideID string) (*domain.Payment, error)

	// ListByUser returns payments where the user is payer or payee, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Payment, error)

	// Process marks a pending payment completed and credits the captain's
	// earnings for non-cash methods, atomically.
	Process(ctx context.Context, paymentID, transactionRef string) (*domain.Payment, error)

	// Refund marks a payment refunded and, for a completed wallet payment,
	// credits the student the full amount and claws back the captain's
	// earnings, atomically. Cash refunds move no wallet money.
	Refund(ctx context.Context, paymentID, reason string) (*domain.Payment, error)

	// PlatformEarnings aggregates platform fees of completed payments in [from, to).
	PlatformEarnings(ctx context.Context, from, to time.Time) (*domain.PlatformEarnings, error)
}

// WalletRepository defines balance operations on a user's wallet.
type WalletRepository interface {
	// Balance returns the user's wallet balance.
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)

	// Debit removes amount from the wallet under a row lock and returns the new
	// balance. Returns ErrInsufficientBalance, leaving the wallet untouched,
	// if amount exceeds the balance.
	Debit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)

	// Credit adds amount to the wallet and returns the new balance.
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
}
