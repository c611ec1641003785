package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrStaleState is returned when a conditional update matched no row because
	// the entity was no longer in the expected state.
	ErrStaleState = errors.New("entity not in expected state")

	// ErrInsufficientBalance is returned when a wallet debit exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)
