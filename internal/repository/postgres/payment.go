package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

const paymentColumns = `id, ride_id, student_id, captain_id, amount, platform_fee, captain_earnings,
	method, status, transaction_ref, refund_reason, created_at, completed_at, refunded_at`

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	db *sqlx.DB
	q  Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db, q: db}
}

// Create persists a new pending payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, ride_id, student_id, captain_id, amount, platform_fee,
			captain_earnings, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	payment.CaptainEarnings = payment.Amount.Sub(payment.PlatformFee)
	payment.Status = domain.PaymentStatusPending

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.RideID,
		payment.StudentID,
		payment.CaptainID,
		payment.Amount,
		payment.PlatformFee,
		payment.CaptainEarnings,
		payment.Method,
		payment.Status,
		payment.CreatedAt,
	)

	return mapError(err)
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.q.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapError(err)
	}
	return &payment, nil
}

// GetByRideID retrieves the payment for a ride, or nil if there is none.
func (r *PaymentRepository) GetByRideID(ctx context.Context, rideID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.q.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments WHERE ride_id = $1`, rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return &payment, nil
}

// ListByUser returns payments made or received by the user, newest first.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE student_id = $1 OR captain_id = $1
		ORDER BY created_at DESC LIMIT $2`

	payments := []*domain.Payment{}
	if err := r.q.SelectContext(ctx, &payments, query, userID, limit); err != nil {
		return nil, mapError(err)
	}
	return payments, nil
}

// Process completes a pending payment and, for wallet payments, credits the
// captain's earnings in the same transaction.
func (r *PaymentRepository) Process(ctx context.Context, paymentID, transactionRef string) (*domain.Payment, error) {
	var payment domain.Payment
	err := runInTx(ctx, r.db, r.q, func(q Querier) error {
		query := `
			UPDATE payments SET status = 'completed', transaction_ref = $1, completed_at = $2
			WHERE id = $3 AND status = 'pending'
			RETURNING ` + paymentColumns

		if err := q.GetContext(ctx, &payment, query, transactionRef, time.Now(), paymentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return r.missingOrStale(ctx, q, paymentID)
			}
			return err
		}

		if payment.Method == domain.PaymentMethodCash {
			return nil
		}

		_, err := NewWalletRepositoryWithTx(q).Credit(ctx, payment.CaptainID, payment.CaptainEarnings)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &payment, nil
}

// Refund reverses a payment. For a completed wallet payment the student is
// credited the full amount and the captain's credited earnings are clawed
// back, which may leave the captain's balance negative. Cash and pending
// payments are only marked refunded.
func (r *PaymentRepository) Refund(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	var payment domain.Payment
	err := runInTx(ctx, r.db, r.q, func(q Querier) error {
		err := q.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, paymentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return err
		}

		if payment.Status == domain.PaymentStatusRefunded {
			return repository.ErrStaleState
		}
		wasCompleted := payment.Status == domain.PaymentStatusCompleted

		now := time.Now()
		_, err = q.ExecContext(ctx,
			`UPDATE payments SET status = 'refunded', refund_reason = $1, refunded_at = $2 WHERE id = $3`,
			reason, now, paymentID,
		)
		if err != nil {
			return err
		}
		payment.Status = domain.PaymentStatusRefunded
		payment.RefundReason = reason
		payment.RefundedAt = &now

		// Cash and pending payments never went through the wallets.
		if !wasCompleted || payment.Method == domain.PaymentMethodCash {
			return nil
		}

		wallets := NewWalletRepositoryWithTx(q)
		if _, err := wallets.Credit(ctx, payment.StudentID, payment.Amount); err != nil {
			return err
		}
		_, err = wallets.Credit(ctx, payment.CaptainID, payment.CaptainEarnings.Neg())
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &payment, nil
}

// PlatformEarnings aggregates platform fees of payments completed in [from, to).
func (r *PaymentRepository) PlatformEarnings(ctx context.Context, from, to time.Time) (*domain.PlatformEarnings, error) {
	query := `
		SELECT COALESCE(SUM(platform_fee), 0) AS total_fees,
			COUNT(*) AS payment_count,
			COALESCE(AVG(platform_fee), 0) AS average_fee
		FROM payments
		WHERE status = 'completed' AND completed_at >= $1 AND completed_at < $2
	`

	var earnings domain.PlatformEarnings
	if err := r.q.GetContext(ctx, &earnings, query, from, to); err != nil {
		return nil, mapError(err)
	}
	earnings.AverageFee = earnings.AverageFee.Round(2)
	earnings.From = from
	earnings.To = to
	return &earnings, nil
}

func (r *PaymentRepository) missingOrStale(ctx context.Context, q Querier, paymentID string) error {
	var status domain.PaymentStatus
	err := q.QueryRowxContext(ctx, `SELECT status FROM payments WHERE id = $1`, paymentID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return mapError(err)
	}
	return repository.ErrStaleState
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
