package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is what a user is allowed to do on the platform.
type Role string

const (
	RoleStudent Role = "student"
	RoleCaptain Role = "captain"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleCaptain || r == RoleAdmin
}

// KYCStatus tracks review of a captain's identity documents.
type KYCStatus string

const (
	KYCNotSubmitted KYCStatus = "not_submitted"
	KYCPending      KYCStatus = "pending"
	KYCApproved     KYCStatus = "approved"
	KYCRejected     KYCStatus = "rejected"
)

// User represents a student, captain or admin account.
type User struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	Phone         string          `db:"phone"`
	PasswordHash  string          `db:"password_hash"`
	Role          Role            `db:"role"`
	KYCStatus     KYCStatus       `db:"kyc_status"`
	WalletBalance decimal.Decimal `db:"wallet_balance"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
}

// CanDrive reports whether the user may accept rides.
func (u *User) CanDrive() bool {
	return u.Role == RoleCaptain && u.KYCStatus == KYCApproved && u.IsActive
}
