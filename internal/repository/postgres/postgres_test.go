package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "postgres"), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sql expectations: %v", err)
	}
}

var paymentRowColumns = []string{
	"id", "ride_id", "student_id", "captain_id", "amount", "platform_fee", "captain_earnings",
	"method", "status", "transaction_ref", "refund_reason", "created_at", "completed_at", "refunded_at",
}

func paymentRow(status domain.PaymentStatus, method domain.PaymentMethod) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(paymentRowColumns).AddRow(
		"payment-1", "ride-1", "student-1", "captain-1", "150.00", "15.00", "135.00",
		string(method), string(status), "TXN-1", "", now, now, nil,
	)
}

// ──────────────────────────────────────────────
// 1. RIDES
// ──────────────────────────────────────────────

func TestRideRepository_Accept(t *testing.T) {
	t.Parallel()

	acceptSQL := regexp.QuoteMeta(`UPDATE rides SET captain_id = $1, status = 'accepted', accepted_at = $2 WHERE id = $3 AND status = 'requested'`)

	t.Run("first captain wins", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(acceptSQL).
			WithArgs("captain-1", sqlmock.AnyArg(), "ride-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := NewRideRepository(db).Accept(context.Background(), "ride-1", "captain-1", time.Now()); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("already taken", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(acceptSQL).
			WithArgs("captain-2", sqlmock.AnyArg(), "ride-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewRideRepository(db).Accept(context.Background(), "ride-1", "captain-2", time.Now())
		if !errors.Is(err, repository.ErrStaleState) {
			t.Fatalf("expected ErrStaleState, got: %v", err)
		}
		expectationsMet(t, mock)
	})
}

func TestRideRepository_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("conditional on from status", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides SET status = $1, arrived_at = $2 WHERE id = $3 AND status = $4`)).
			WithArgs(domain.RideStatusArrived, sqlmock.AnyArg(), "ride-1", domain.RideStatusAccepted).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewRideRepository(db).UpdateStatus(context.Background(), "ride-1", domain.RideStatusAccepted, domain.RideStatusArrived, "", time.Now())
		if !errors.Is(err, repository.ErrStaleState) {
			t.Fatalf("expected ErrStaleState, got: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("cancellation stores reason", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`cancelled_at = $2, cancellation_reason = $5 WHERE id = $3 AND status = $4`)).
			WithArgs(domain.RideStatusCancelled, sqlmock.AnyArg(), "ride-1", domain.RideStatusRequested, "plans changed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewRideRepository(db).UpdateStatus(context.Background(), "ride-1", domain.RideStatusRequested, domain.RideStatusCancelled, "plans changed", time.Now())
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		expectationsMet(t, mock)
	})
}

// ──────────────────────────────────────────────
// 2. WALLETS
// ──────────────────────────────────────────────

func TestWalletRepository_Debit(t *testing.T) {
	t.Parallel()

	lockSQL := regexp.QuoteMeta(`SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`)
	debitSQL := regexp.QuoteMeta(`UPDATE users SET wallet_balance = wallet_balance - $1 WHERE id = $2 RETURNING wallet_balance`)

	t.Run("sufficient balance", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("student-1").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("200.00"))
		mock.ExpectQuery(debitSQL).WithArgs(sqlmock.AnyArg(), "student-1").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("50.00"))
		mock.ExpectCommit()

		balance, err := NewWalletRepository(db).Debit(context.Background(), "student-1", decimal.RequireFromString("150"))
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !balance.Equal(decimal.RequireFromString("50")) {
			t.Errorf("expected balance 50, got %s", balance)
		}
		expectationsMet(t, mock)
	})

	t.Run("insufficient balance rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("student-1").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("100.00"))
		mock.ExpectRollback()

		_, err := NewWalletRepository(db).Debit(context.Background(), "student-1", decimal.RequireFromString("150"))
		if !errors.Is(err, repository.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}))
		mock.ExpectRollback()

		_, err := NewWalletRepository(db).Debit(context.Background(), "ghost", decimal.RequireFromString("1"))
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
		expectationsMet(t, mock)
	})
}

// ──────────────────────────────────────────────
// 3. PAYMENTS
// ──────────────────────────────────────────────

func TestPaymentRepository_Create_DuplicateRide(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_payments_ride"})

	payment := &domain.Payment{
		ID:          "payment-2",
		RideID:      "ride-1",
		StudentID:   "student-1",
		CaptainID:   "captain-1",
		Amount:      decimal.RequireFromString("150"),
		PlatformFee: decimal.RequireFromString("15"),
		Method:      domain.PaymentMethodWallet,
		CreatedAt:   time.Now(),
	}

	err := NewPaymentRepository(db).Create(context.Background(), payment)
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got: %v", err)
	}
	if !payment.CaptainEarnings.Equal(decimal.RequireFromString("135")) {
		t.Errorf("expected derived earnings 135, got %s", payment.CaptainEarnings)
	}
	expectationsMet(t, mock)
}

func TestPaymentRepository_Process(t *testing.T) {
	t.Parallel()

	processSQL := regexp.QuoteMeta(`UPDATE payments SET status = 'completed', transaction_ref = $1, completed_at = $2`)
	creditSQL := regexp.QuoteMeta(`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2 RETURNING wallet_balance`)

	t.Run("wallet credits captain in the same transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(processSQL).WithArgs("TXN-1", sqlmock.AnyArg(), "payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusCompleted, domain.PaymentMethodWallet))
		mock.ExpectQuery(creditSQL).WithArgs(sqlmock.AnyArg(), "captain-1").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("135.00"))
		mock.ExpectCommit()

		payment, err := NewPaymentRepository(db).Process(context.Background(), "payment-1", "TXN-1")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if payment.Status != domain.PaymentStatusCompleted {
			t.Errorf("expected status completed, got %s", payment.Status)
		}
		expectationsMet(t, mock)
	})

	t.Run("cash skips the credit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(processSQL).WithArgs("TXN-1", sqlmock.AnyArg(), "payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusCompleted, domain.PaymentMethodCash))
		mock.ExpectCommit()

		if _, err := NewPaymentRepository(db).Process(context.Background(), "payment-1", "TXN-1"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("credit failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(processSQL).WithArgs("TXN-1", sqlmock.AnyArg(), "payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusCompleted, domain.PaymentMethodWallet))
		mock.ExpectQuery(creditSQL).WithArgs(sqlmock.AnyArg(), "captain-1").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		if _, err := NewPaymentRepository(db).Process(context.Background(), "payment-1", "TXN-1"); err == nil {
			t.Fatal("expected an error, got nil")
		}
		expectationsMet(t, mock)
	})

	t.Run("already processed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(processSQL).WithArgs("TXN-1", sqlmock.AnyArg(), "payment-1").
			WillReturnRows(sqlmock.NewRows(paymentRowColumns))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM payments WHERE id = $1`)).WithArgs("payment-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))
		mock.ExpectRollback()

		_, err := NewPaymentRepository(db).Process(context.Background(), "payment-1", "TXN-1")
		if !errors.Is(err, repository.ErrStaleState) {
			t.Fatalf("expected ErrStaleState, got: %v", err)
		}
		expectationsMet(t, mock)
	})
}

func TestPaymentRepository_Refund(t *testing.T) {
	t.Parallel()

	lockSQL := regexp.QuoteMeta(`FROM payments WHERE id = $1 FOR UPDATE`)
	markSQL := regexp.QuoteMeta(`UPDATE payments SET status = 'refunded', refund_reason = $1, refunded_at = $2 WHERE id = $3`)
	creditSQL := regexp.QuoteMeta(`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2 RETURNING wallet_balance`)

	t.Run("completed wallet payment", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusCompleted, domain.PaymentMethodWallet))
		mock.ExpectExec(markSQL).WithArgs("no-show", sqlmock.AnyArg(), "payment-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(creditSQL).WithArgs(sqlmock.AnyArg(), "student-1").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("150.00"))
		mock.ExpectQuery(creditSQL).WithArgs(sqlmock.AnyArg(), "captain-1").
			WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow("0.00"))
		mock.ExpectCommit()

		payment, err := NewPaymentRepository(db).Refund(context.Background(), "payment-1", "no-show")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if payment.Status != domain.PaymentStatusRefunded || payment.RefundedAt == nil {
			t.Errorf("expected a refunded payment, got %+v", payment)
		}
		expectationsMet(t, mock)
	})

	t.Run("pending payment moves no money", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusPending, domain.PaymentMethodWallet))
		mock.ExpectExec(markSQL).WithArgs("", sqlmock.AnyArg(), "payment-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if _, err := NewPaymentRepository(db).Refund(context.Background(), "payment-1", ""); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("completed cash payment moves no money", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusCompleted, domain.PaymentMethodCash))
		mock.ExpectExec(markSQL).WithArgs("changed my mind", sqlmock.AnyArg(), "payment-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if _, err := NewPaymentRepository(db).Refund(context.Background(), "payment-1", "changed my mind"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("double refund", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs("payment-1").
			WillReturnRows(paymentRow(domain.PaymentStatusRefunded, domain.PaymentMethodWallet))
		mock.ExpectRollback()

		_, err := NewPaymentRepository(db).Refund(context.Background(), "payment-1", "again")
		if !errors.Is(err, repository.ErrStaleState) {
			t.Fatalf("expected ErrStaleState, got: %v", err)
		}
		expectationsMet(t, mock)
	})
}

func TestPaymentRepository_PlatformEarnings(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'completed' AND completed_at >= $1 AND completed_at < $2`)).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"total_fees", "payment_count", "average_fee"}).AddRow("45.00", 3, "15.000000"))

	earnings, err := NewPaymentRepository(db).PlatformEarnings(context.Background(), from, to)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if earnings.PaymentCount != 3 || !earnings.TotalFees.Equal(decimal.RequireFromString("45")) {
		t.Errorf("unexpected earnings: %+v", earnings)
	}
	if !earnings.From.Equal(from) || !earnings.To.Equal(to) {
		t.Error("expected the report window to be echoed back")
	}
	expectationsMet(t, mock)
}

func TestHaversineSQL_NumbersParameters(t *testing.T) {
	t.Parallel()

	sql := haversineSQL("ca.lat", "ca.lng", 1, 2)
	for _, want := range []string{"RADIANS(ca.lat - $1)", "RADIANS(ca.lng - $2)", "COS(RADIANS($1))"} {
		if !regexp.MustCompile(regexp.QuoteMeta(want)).MatchString(sql) {
			t.Errorf("expected %q in %s", want, sql)
		}
	}
}

// ──────────────────────────────────────────────
// 4. MALFORMED KEYS
// ──────────────────────────────────────────────

func TestMalformedIDs_AreNotFound(t *testing.T) {
	t.Parallel()

	invalidUUID := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	testCases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		call   func(db *sqlx.DB) error
	}{
		{
			name: "ride lookup",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM rides WHERE id = $1`)).WithArgs("abc").WillReturnError(invalidUUID)
			},
			call: func(db *sqlx.DB) error {
				_, err := NewRideRepository(db).GetByID(context.Background(), "abc")
				return err
			},
		},
		{
			name: "ride accept",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE rides SET captain_id = $1`)).WillReturnError(invalidUUID)
			},
			call: func(db *sqlx.DB) error {
				return NewRideRepository(db).Accept(context.Background(), "abc", "captain-1", time.Now())
			},
		},
		{
			name: "payment lookup",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE id = $1`)).WithArgs("abc").WillReturnError(invalidUUID)
			},
			call: func(db *sqlx.DB) error {
				_, err := NewPaymentRepository(db).GetByID(context.Background(), "abc")
				return err
			},
		},
		{
			name: "payment refund",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE id = $1 FOR UPDATE`)).WithArgs("abc").WillReturnError(invalidUUID)
				mock.ExpectRollback()
			},
			call: func(db *sqlx.DB) error {
				_, err := NewPaymentRepository(db).Refund(context.Background(), "abc", "")
				return err
			},
		},
		{
			name: "user lookup",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).WithArgs("abc").WillReturnError(invalidUUID)
			},
			call: func(db *sqlx.DB) error {
				_, err := NewUserRepository(db).GetByID(context.Background(), "abc")
				return err
			},
		},
		{
			name: "user deactivation",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET is_active = $1 WHERE id = $2`)).WithArgs(false, "abc").WillReturnError(invalidUUID)
			},
			call: func(db *sqlx.DB) error {
				return NewUserRepository(db).SetActive(context.Background(), "abc", false)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			tc.expect(mock)

			if err := tc.call(db); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got: %v", err)
			}
			expectationsMet(t, mock)
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	other := errors.New("connection reset")

	testCases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique violation", &pq.Error{Code: "23505", Constraint: "payments_ride_id_key"}, repository.ErrDuplicate},
		{"foreign key violation", &pq.Error{Code: "23503", Constraint: "rides_student_id_fkey"}, repository.ErrNotFound},
		{"invalid text representation", &pq.Error{Code: "22P02"}, repository.ErrNotFound},
		{"other driver error", other, other},
	}

	for _, tc := range testCases {
		got := mapError(tc.in)
		if tc.want == nil {
			if got != nil {
				t.Errorf("%s: expected nil, got %v", tc.name, got)
			}
			continue
		}
		if !errors.Is(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
