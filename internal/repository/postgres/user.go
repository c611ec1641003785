package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"campusride/internal/domain"
	"campusride/internal/repository"
)

const userColumns = `id, name, email, phone, password_hash, role, kyc_status, wallet_balance, is_active, created_at`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{q: db}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password_hash, role, kyc_status, wallet_balance, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.KYCStatus,
		user.WalletBalance,
		user.IsActive,
		user.CreatedAt,
	)

	return mapError(err)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.q.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapError(err)
	}
	return &user, nil
}

// ListByKYCStatus lists users of a role with the given KYC status, oldest first.
func (r *UserRepository) ListByKYCStatus(ctx context.Context, role domain.Role, status domain.KYCStatus) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 AND kyc_status = $2 ORDER BY created_at ASC`

	users := []*domain.User{}
	if err := r.q.SelectContext(ctx, &users, query, role, status); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// UpdateKYCStatus records a KYC decision.
func (r *UserRepository) UpdateKYCStatus(ctx context.Context, id string, status domain.KYCStatus) error {
	return r.execOne(ctx, `UPDATE users SET kyc_status = $1 WHERE id = $2`, status, id)
}

// SetActive flips the soft-deactivation flag.
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.execOne(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
}

func (r *UserRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
