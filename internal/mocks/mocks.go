// Package mocks provides thread-safe in-memory implementations of the
// repository, lock and publisher interfaces for tests.
package mocks

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"campusride/internal/domain"
	"campusride/internal/redis"
	"campusride/internal/repository"
)

// Ensure mocks implement the interfaces they stand in for.
var (
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.RideRepository    = (*MockRideRepository)(nil)
	_ repository.CaptainRepository = (*MockCaptainRepository)(nil)
	_ repository.WalletRepository  = (*MockWalletRepository)(nil)
	_ repository.PaymentRepository = (*MockPaymentRepository)(nil)
	_ redis.LockStoreInterface     = (*MockLockStore)(nil)
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError  error
	GetByIDError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// GetUser returns a copy of the stored user for assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil
	}
	copy := *user
	return &copy
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) ListByKYCStatus(ctx context.Context, role domain.Role, status domain.KYCStatus) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.User{}
	for _, u := range m.users {
		if u.Role == role && u.KYCStatus == status {
			copy := *u
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *MockUserRepository) UpdateKYCStatus(ctx context.Context, id string, status domain.KYCStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.KYCStatus = status
	return nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsActive = active
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository. Accept and
// UpdateStatus are conditional on the stored status, like the SQL they stand in for.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount       int32
	AcceptCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	GetActiveError    error
	UpdateStatusError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

// GetRide returns a copy of the ride for assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil
	}
	copy := *ride
	return &copy
}

// CountRides returns the number of rides.
func (m *MockRideRepository) CountRides() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rides)
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[ride.ID]; ok {
		return repository.ErrDuplicate
	}
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetActiveByStudent(ctx context.Context, studentID string) (*domain.Ride, error) {
	if m.GetActiveError != nil {
		return nil, m.GetActiveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rides {
		if r.StudentID == studentID && r.Status.IsActive() {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockRideRepository) ListByStudent(ctx context.Context, studentID string, limit int) ([]*domain.Ride, error) {
	return m.filter(limit, func(r *domain.Ride) bool { return r.StudentID == studentID }), nil
}

func (m *MockRideRepository) ListByCaptain(ctx context.Context, captainID string, limit int) ([]*domain.Ride, error) {
	return m.filter(limit, func(r *domain.Ride) bool { return r.AssignedCaptain() == captainID }), nil
}

func (m *MockRideRepository) ListRequestedNear(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Ride{}
	for _, r := range m.rides {
		if r.Status == domain.RideStatusRequested && domain.CalculateDistance(lat, lng, r.PickupLat, r.PickupLng) <= radiusKm {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return domain.CalculateDistance(lat, lng, result[i].PickupLat, result[i].PickupLng) <
			domain.CalculateDistance(lat, lng, result[j].PickupLat, result[j].PickupLng)
	})
	return result, nil
}

func (m *MockRideRepository) filter(limit int, keep func(*domain.Ride) bool) []*domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Ride{}
	for _, r := range m.rides {
		if keep(r) {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestedAt.After(result[j].RequestedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (m *MockRideRepository) Accept(ctx context.Context, rideID, captainID string, at time.Time) error {
	atomic.AddInt32(&m.AcceptCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok || ride.Status != domain.RideStatusRequested {
		return repository.ErrStaleState
	}
	id := captainID
	ride.CaptainID = &id
	ride.Status = domain.RideStatusAccepted
	ride.AcceptedAt = &at
	return nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, rideID string, from, to domain.RideStatus, reason string, at time.Time) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok || ride.Status != from {
		return repository.ErrStaleState
	}
	ride.Status = to
	switch to {
	case domain.RideStatusAccepted:
		ride.AcceptedAt = &at
	case domain.RideStatusArrived:
		ride.ArrivedAt = &at
	case domain.RideStatusStarted:
		ride.StartedAt = &at
	case domain.RideStatusCompleted:
		ride.CompletedAt = &at
	case domain.RideStatusCancelled:
		ride.CancelledAt = &at
		if reason != "" {
			ride.CancellationReason = reason
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK CAPTAIN REPOSITORY
// ──────────────────────────────────────────────

// MockCaptainRepository is a mock implementation of CaptainRepository.
// When Users is set, FindAvailableNear applies the same eligibility rules
// as the SQL query.
type MockCaptainRepository struct {
	mu           sync.RWMutex
	availability map[string]*domain.CaptainAvailability

	Users *MockUserRepository

	// Error injection
	FindError error
}

// NewMockCaptainRepository creates a new mock captain repository.
func NewMockCaptainRepository(users *MockUserRepository) *MockCaptainRepository {
	return &MockCaptainRepository{
		availability: make(map[string]*domain.CaptainAvailability),
		Users:        users,
	}
}

// AddCaptain records an online captain at the given position.
func (m *MockCaptainRepository) AddCaptain(captainID string, lat, lng float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.availability[captainID] = &domain.CaptainAvailability{
		CaptainID: captainID,
		Lat:       &lat,
		Lng:       &lng,
		IsOnline:  true,
		LastSeen:  time.Now(),
	}
}

func (m *MockCaptainRepository) entry(captainID string) *domain.CaptainAvailability {
	a, ok := m.availability[captainID]
	if !ok {
		a = &domain.CaptainAvailability{CaptainID: captainID}
		m.availability[captainID] = a
	}
	a.LastSeen = time.Now()
	return a
}

func (m *MockCaptainRepository) SetStatus(ctx context.Context, captainID string, online bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry(captainID).IsOnline = online
	return nil
}

func (m *MockCaptainRepository) UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.entry(captainID)
	a.Lat = &lat
	a.Lng = &lng
	return nil
}

func (m *MockCaptainRepository) GetAvailability(ctx context.Context, captainID string) (*domain.CaptainAvailability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.availability[captainID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *a
	return &copy, nil
}

func (m *MockCaptainRepository) FindAvailableNear(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.NearbyCaptain, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []domain.NearbyCaptain{}
	for _, a := range m.availability {
		if !a.IsOnline || a.Lat == nil || a.Lng == nil {
			continue
		}
		var name, phone string
		if m.Users != nil {
			user := m.Users.GetUser(a.CaptainID)
			if user == nil || !user.CanDrive() {
				continue
			}
			name, phone = user.Name, user.Phone
		}
		d := domain.CalculateDistance(lat, lng, *a.Lat, *a.Lng)
		if d > radiusKm {
			continue
		}
		result = append(result, domain.NearbyCaptain{
			CaptainID:  a.CaptainID,
			Name:       name,
			Phone:      phone,
			Lat:        *a.Lat,
			Lng:        *a.Lng,
			DistanceKm: d,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DistanceKm < result[j].DistanceKm })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK WALLET REPOSITORY
// ──────────────────────────────────────────────

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal

	// Counters for verification
	DebitCallCount  int32
	CreditCallCount int32

	// Error injection
	DebitError  error
	CreditError error
}

// NewMockWalletRepository creates a new mock wallet repository.
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		balances: make(map[string]decimal.Decimal),
	}
}

// SetBalance sets a user's balance.
func (m *MockWalletRepository) SetBalance(userID string, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] = amount
}

// GetBalance returns a user's balance for assertions.
func (m *MockWalletRepository) GetBalance(userID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID]
}

func (m *MockWalletRepository) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.balances[userID]
	if !ok {
		return decimal.Zero, repository.ErrNotFound
	}
	return balance, nil
}

func (m *MockWalletRepository) Debit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	atomic.AddInt32(&m.DebitCallCount, 1)
	if m.DebitError != nil {
		return decimal.Zero, m.DebitError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.balances[userID]
	if !ok {
		return decimal.Zero, repository.ErrNotFound
	}
	if amount.GreaterThan(balance) {
		return decimal.Zero, repository.ErrInsufficientBalance
	}
	m.balances[userID] = balance.Sub(amount)
	return m.balances[userID], nil
}

func (m *MockWalletRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	atomic.AddInt32(&m.CreditCallCount, 1)
	if m.CreditError != nil {
		return decimal.Zero, m.CreditError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creditLocked(userID, amount)
}

func (m *MockWalletRepository) creditLocked(userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, ok := m.balances[userID]
	if !ok {
		return decimal.Zero, repository.ErrNotFound
	}
	m.balances[userID] = balance.Add(amount)
	return m.balances[userID], nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository. Process
// and Refund move money through the shared wallet mock.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	wallets  *MockWalletRepository

	// Counters for verification
	CreateCallCount  int32
	ProcessCallCount int32
	RefundCallCount  int32

	// Error injection
	CreateError  error
	ProcessError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository(wallets *MockWalletRepository) *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
		wallets:  wallets,
	}
}

// AddPayment adds a payment to the mock repository.
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

// GetPayment returns a copy of the payment for assertions.
func (m *MockPaymentRepository) GetPayment(id string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[id]
	if !ok {
		return nil
	}
	copy := *p
	return &copy
}

// CountPayments returns the number of payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.RideID == payment.RideID {
			return repository.ErrDuplicate
		}
	}
	payment.CaptainEarnings = payment.Amount.Sub(payment.PlatformFee)
	payment.Status = domain.PaymentStatusPending
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p := m.GetPayment(id)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *MockPaymentRepository) GetByRideID(ctx context.Context, rideID string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.RideID == rideID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Payment{}
	for _, p := range m.payments {
		if p.StudentID == userID || p.CaptainID == userID {
			copy := *p
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockPaymentRepository) Process(ctx context.Context, paymentID, transactionRef string) (*domain.Payment, error) {
	atomic.AddInt32(&m.ProcessCallCount, 1)
	if m.ProcessError != nil {
		return nil, m.ProcessError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, repository.ErrStaleState
	}
	if p.Method != domain.PaymentMethodCash {
		if _, err := m.wallets.Credit(ctx, p.CaptainID, p.CaptainEarnings); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	p.Status = domain.PaymentStatusCompleted
	p.TransactionRef = transactionRef
	p.CompletedAt = &now
	copy := *p
	return &copy, nil
}

func (m *MockPaymentRepository) Refund(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	atomic.AddInt32(&m.RefundCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Status == domain.PaymentStatusRefunded {
		return nil, repository.ErrStaleState
	}
	if p.Status == domain.PaymentStatusCompleted && p.Method != domain.PaymentMethodCash {
		m.wallets.mu.Lock()
		if _, err := m.wallets.creditLocked(p.StudentID, p.Amount); err != nil {
			m.wallets.mu.Unlock()
			return nil, err
		}
		if _, err := m.wallets.creditLocked(p.CaptainID, p.CaptainEarnings.Neg()); err != nil {
			m.wallets.mu.Unlock()
			return nil, err
		}
		m.wallets.mu.Unlock()
	}
	now := time.Now()
	p.Status = domain.PaymentStatusRefunded
	p.RefundReason = reason
	p.RefundedAt = &now
	copy := *p
	return &copy, nil
}

func (m *MockPaymentRepository) PlatformEarnings(ctx context.Context, from, to time.Time) (*domain.PlatformEarnings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	earnings := &domain.PlatformEarnings{From: from, To: to}
	for _, p := range m.payments {
		if p.Status != domain.PaymentStatusCompleted || p.CompletedAt == nil {
			continue
		}
		if p.CompletedAt.Before(from) || !p.CompletedAt.Before(to) {
			continue
		}
		earnings.TotalFees = earnings.TotalFees.Add(p.PlatformFee)
		earnings.PaymentCount++
	}
	if earnings.PaymentCount > 0 {
		earnings.AverageFee = earnings.TotalFees.Div(decimal.NewFromInt(int64(earnings.PaymentCount))).Round(2)
	}
	return earnings, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]string

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]string),
	}
}

// Hold marks the ride lock as held by another owner.
func (m *MockLockStore) Hold(rideID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[rideID] = "other"
}

// IsLocked reports whether the ride lock is currently held.
func (m *MockLockStore) IsLocked(rideID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.locks[rideID]
	return ok
}

func (m *MockLockStore) AcquireRideLock(ctx context.Context, rideID, token string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[rideID]; held {
		return false, nil
	}
	m.locks[rideID] = token
	return true, nil
}

func (m *MockLockStore) ReleaseRideLock(ctx context.Context, rideID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[rideID] == token {
		delete(m.locks, rideID)
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// PublishedEvent is one recorded Publish call.
type PublishedEvent struct {
	RoutingKey string
	Body       any
}

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent

	// Error injection
	PublishError error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, body any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{RoutingKey: routingKey, Body: body})
	return m.PublishError
}

// RoutingKeys returns the routing keys published so far, in order.
func (m *MockPublisher) RoutingKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, len(m.events))
	for i, e := range m.events {
		keys[i] = e.RoutingKey
	}
	return keys
}
