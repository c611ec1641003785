package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"campusride/internal/auth"
	"campusride/internal/domain"
	"campusride/internal/repository"
)

const minPasswordLength = 8

// AuthService handles signup, login and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	hashCost int
}

// NewAuthService creates a new AuthService hashing passwords at hashCost.
// A zero hashCost uses bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, hashCost int) *AuthService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: hashCost,
	}
}

// SignupRequest contains the parameters for creating an account.
type SignupRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// AuthResult is an authenticated user with a fresh bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Signup registers a student or captain. Captains start with KYC pending.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if req.Role != domain.RoleStudent && req.Role != domain.RoleCaptain {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	kyc := domain.KYCNotSubmitted
	if req.Role == domain.RoleCaptain {
		kyc = domain.KYCPending
	}

	user := &domain.User{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		Email:         normalizeEmail(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		PasswordHash:  string(hash),
		Role:          req.Role,
		KYCStatus:     kyc,
		WalletBalance: decimal.Zero,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.issue(user)
}

// Me returns the authenticated user's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
