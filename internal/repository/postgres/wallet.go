package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"campusride/internal/repository"
)

// WalletRepository is a PostgreSQL implementation of repository.WalletRepository.
// Balances live on the users row.
type WalletRepository struct {
	db *sqlx.DB
	q  Querier
}

// NewWalletRepository creates a new PostgreSQL wallet repository.
func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db, q: db}
}

// NewWalletRepositoryWithTx creates a wallet repository bound to a caller's transaction.
func NewWalletRepositoryWithTx(tx Querier) *WalletRepository {
	return &WalletRepository{q: tx}
}

// Balance returns the user's wallet balance.
func (r *WalletRepository) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRowxContext(ctx, `SELECT wallet_balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, repository.ErrNotFound
		}
		return decimal.Zero, mapError(err)
	}
	return balance, nil
}

// Debit locks the user row, checks the balance and subtracts amount.
func (r *WalletRepository) Debit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := runInTx(ctx, r.db, r.q, func(q Querier) error {
		err := q.QueryRowxContext(ctx, `SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return err
		}

		if amount.GreaterThan(balance) {
			return repository.ErrInsufficientBalance
		}

		return q.QueryRowxContext(ctx,
			`UPDATE users SET wallet_balance = wallet_balance - $1 WHERE id = $2 RETURNING wallet_balance`,
			amount, userID,
		).Scan(&balance)
	})
	if err != nil {
		return decimal.Zero, mapError(err)
	}
	return balance, nil
}

// Credit adds amount to the wallet. A negative amount records a debt and may
// take the balance below zero.
func (r *WalletRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRowxContext(ctx,
		`UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2 RETURNING wallet_balance`,
		amount, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, repository.ErrNotFound
		}
		return decimal.Zero, mapError(err)
	}
	return balance, nil
}

var _ repository.WalletRepository = (*WalletRepository)(nil)
