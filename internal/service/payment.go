package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campusride/internal/domain"
	"campusride/internal/redis"
	"campusride/internal/repository"
)

const (
	rideLockTTL        = 30 * time.Second
	maxWalletTopUp     = 10000
	paymentHistorySize = 50
)

// PaymentService settles ride fares and manages wallets.
type PaymentService struct {
	paymentRepo         repository.PaymentRepository
	walletRepo          repository.WalletRepository
	rideRepo            repository.RideRepository
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
	feeRate             decimal.Decimal
}

// NewPaymentService creates a new PaymentService. lockStore and
// notificationService may be nil.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	walletRepo repository.WalletRepository,
	rideRepo repository.RideRepository,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
	feeRate decimal.Decimal,
) *PaymentService {
	if !feeRate.IsPositive() {
		feeRate = domain.DefaultPlatformFeeRate
	}
	return &PaymentService{
		paymentRepo:         paymentRepo,
		walletRepo:          walletRepo,
		rideRepo:            rideRepo,
		lockStore:           lockStore,
		notificationService: notificationService,
		feeRate:             feeRate,
	}
}

// ProcessPaymentRequest contains the parameters for paying for a ride.
type ProcessPaymentRequest struct {
	RideID    string
	StudentID string
	Method    domain.PaymentMethod
}

// ProcessPayment settles a completed ride. Wallet payments are debited first,
// then processed; if processing fails after the debit, the debit is reversed.
func (s *PaymentService) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*domain.Payment, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.StudentID == "" {
		return nil, ErrInvalidUserID
	}
	if !req.Method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	if s.lockStore != nil {
		token := uuid.New().String()
		locked, err := s.lockStore.AcquireRideLock(ctx, req.RideID, token, rideLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrPaymentInProgress
		}
		defer func() {
			if err := s.lockStore.ReleaseRideLock(context.WithoutCancel(ctx), req.RideID, token); err != nil {
				log.Printf("failed to release payment lock for ride %s: %v", req.RideID, err)
			}
		}()
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if ride.StudentID != req.StudentID {
		return nil, ErrNotRideParticipant
	}

	if ride.Status != domain.RideStatusCompleted {
		return nil, ErrRideNotCompleted
	}

	payment, err := s.pendingPayment(ctx, ride, req.Method)
	if err != nil {
		return nil, err
	}

	if req.Method == domain.PaymentMethodWallet {
		if err := s.debitWallet(ctx, payment); err != nil {
			return nil, err
		}
	}

	processed, err := s.paymentRepo.Process(ctx, payment.ID, newTransactionRef())
	if err != nil {
		if req.Method == domain.PaymentMethodWallet {
			s.compensateDebit(ctx, payment)
		}
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrPaymentNotPending
		}
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyPaymentCompleted(ctx, processed)
	}

	return processed, nil
}

// pendingPayment returns the ride's pending payment, creating it on first
// attempt. A pending payment left by a failed attempt is resumed so the
// student can retry after topping up.
func (s *PaymentService) pendingPayment(ctx context.Context, ride *domain.Ride, method domain.PaymentMethod) (*domain.Payment, error) {
	existing, err := s.paymentRepo.GetByRideID(ctx, ride.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == domain.PaymentStatusPending && existing.Method == method {
			return existing, nil
		}
		return nil, ErrPaymentExists
	}

	amount := decimal.NewFromFloat(ride.Fare).Round(2)
	payment := &domain.Payment{
		ID:          uuid.New().String(),
		RideID:      ride.ID,
		StudentID:   ride.StudentID,
		CaptainID:   ride.AssignedCaptain(),
		Amount:      amount,
		PlatformFee: domain.PlatformFee(amount, s.feeRate),
		Method:      method,
		CreatedAt:   time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPaymentExists
		}
		return nil, err
	}

	return payment, nil
}

// debitWallet checks the student's balance and debits the fare. The row-locked
// debit is authoritative; the balance read only fails fast.
func (s *PaymentService) debitWallet(ctx context.Context, payment *domain.Payment) error {
	balance, err := s.walletRepo.Balance(ctx, payment.StudentID)
	if err != nil {
		return err
	}
	if payment.Amount.GreaterThan(balance) {
		return repository.ErrInsufficientBalance
	}

	_, err = s.walletRepo.Debit(ctx, payment.StudentID, payment.Amount)
	return err
}

// compensateDebit re-credits a wallet debit whose payment failed to process.
func (s *PaymentService) compensateDebit(ctx context.Context, payment *domain.Payment) {
	if _, err := s.walletRepo.Credit(context.WithoutCancel(ctx), payment.StudentID, payment.Amount); err != nil {
		log.Printf("CRITICAL: failed to re-credit %s to student %s for payment %s: %v",
			payment.Amount.StringFixed(2), payment.StudentID, payment.ID, err)
	}
}

// RefundRequest contains the parameters for refunding a payment.
type RefundRequest struct {
	PaymentID     string
	RequesterID   string
	RequesterRole domain.Role
	Reason        string
}

// RefundPayment refunds a payment on behalf of an admin or the payer.
func (s *PaymentService) RefundPayment(ctx context.Context, req RefundRequest) (*domain.Payment, error) {
	if req.PaymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	payment, err := s.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	if req.RequesterRole != domain.RoleAdmin && payment.StudentID != req.RequesterID {
		return nil, ErrNotPaymentOwner
	}

	refunded, err := s.paymentRepo.Refund(ctx, payment.ID, strings.TrimSpace(req.Reason))
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrPaymentAlreadyRefunded
		}
		return nil, err
	}

	if s.notificationService != nil {
		s.notificationService.NotifyPaymentRefunded(ctx, refunded)
	}

	return refunded, nil
}

// GetWalletBalance returns the user's wallet balance.
func (s *PaymentService) GetWalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if userID == "" {
		return decimal.Zero, ErrInvalidUserID
	}
	return s.walletRepo.Balance(ctx, userID)
}

// AddToWallet tops up a wallet by a positive amount of at most ₹10000.
func (s *PaymentService) AddToWallet(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if userID == "" {
		return decimal.Zero, ErrInvalidUserID
	}
	if !amount.IsPositive() || amount.GreaterThan(decimal.NewFromInt(maxWalletTopUp)) || !amount.Equal(amount.Round(2)) {
		return decimal.Zero, ErrInvalidPaymentAmount
	}
	return s.walletRepo.Credit(ctx, userID, amount)
}

// History returns payments the user made or received, newest first.
func (s *PaymentService) History(ctx context.Context, userID string) ([]*domain.Payment, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.paymentRepo.ListByUser(ctx, userID, paymentHistorySize)
}

func newTransactionRef() string {
	return fmt.Sprintf("TXN-%s", strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16]))
}
