package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod is how the student settles a fare.
type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCash   PaymentMethod = "cash"
)

// IsValid reports whether m is a supported payment method.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodWallet || m == PaymentMethodCash
}

// DefaultPlatformFeeRate is the share of each fare kept by the platform.
var DefaultPlatformFeeRate = decimal.RequireFromString("0.10")

// Payment settles one ride from its student to its captain.
type Payment struct {
	ID              string          `db:"id"`
	RideID          string          `db:"ride_id"`
	StudentID       string          `db:"student_id"`
	CaptainID       string          `db:"captain_id"`
	Amount          decimal.Decimal `db:"amount"`
	PlatformFee     decimal.Decimal `db:"platform_fee"`
	CaptainEarnings decimal.Decimal `db:"captain_earnings"`
	Method          PaymentMethod   `db:"method"`
	Status          PaymentStatus   `db:"status"`
	TransactionRef  string          `db:"transaction_ref"`
	RefundReason    string          `db:"refund_reason"`
	CreatedAt       time.Time       `db:"created_at"`
	CompletedAt     *time.Time      `db:"completed_at"`
	RefundedAt      *time.Time      `db:"refunded_at"`
}

// PlatformFee returns the platform's cut of amount, rounded to paise.
func PlatformFee(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// PlatformEarnings summarises platform fees over a reporting window.
type PlatformEarnings struct {
	TotalFees    decimal.Decimal `db:"total_fees" json:"totalFees"`
	PaymentCount int             `db:"payment_count" json:"paymentCount"`
	AverageFee   decimal.Decimal `db:"average_fee" json:"averageFee"`
	From         time.Time       `db:"-" json:"from"`
	To           time.Time       `db:"-" json:"to"`
}
