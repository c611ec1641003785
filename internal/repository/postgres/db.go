package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"campusride/internal/repository"
)

// Querier is an interface satisfied by both *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sqlx.DB)(nil)
	_ Querier = (*sqlx.Tx)(nil)
)

// runInTx runs fn inside a new transaction on db. Repositories built with a
// caller's transaction have no db and run fn directly on it.
func runInTx(ctx context.Context, db *sqlx.DB, q Querier, fn func(Querier) error) (err error) {
	if db == nil {
		return fn(q)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// PostgreSQL error codes mapped to repository errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRep      = "22P02"
)

// mapError translates driver errors into repository errors. A malformed key
// (e.g. an id that is not a UUID) cannot match any row, so it is ErrNotFound.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", repository.ErrNotFound, pqErr.Constraint)
		case pqInvalidTextRep:
			return repository.ErrNotFound
		}
	}
	return err
}

// haversineSQL renders the great-circle distance in km between the point
// ($latParam, $lngParam) and the given columns. It matches domain.CalculateDistance.
func haversineSQL(latCol, lngCol string, latParam, lngParam int) string {
	return fmt.Sprintf(`2 * 6371 * ASIN(LEAST(1, SQRT(
			POWER(SIN(RADIANS(%[1]s - $%[3]d) / 2), 2) +
			COS(RADIANS($%[3]d)) * COS(RADIANS(%[1]s)) *
			POWER(SIN(RADIANS(%[2]s - $%[4]d) / 2), 2)
		)))`, latCol, lngCol, latParam, lngParam)
}
