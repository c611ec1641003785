package service_test

import (
	"time"

	"github.com/shopspring/decimal"

	"campusride/internal/domain"
	"campusride/internal/mocks"
	"campusride/internal/service"
)

func newStudent(id string) *domain.User {
	return &domain.User{
		ID:        id,
		Name:      "Student " + id,
		Email:     id + "@campus.edu",
		Role:      domain.RoleStudent,
		KYCStatus: domain.KYCNotSubmitted,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func newCaptain(id string, kyc domain.KYCStatus) *domain.User {
	return &domain.User{
		ID:        id,
		Name:      "Captain " + id,
		Email:     id + "@campus.edu",
		Phone:     "+91-90000-00000",
		Role:      domain.RoleCaptain,
		KYCStatus: kyc,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

// newRide returns a ride between two campus points in the given status.
func newRide(id, studentID, captainID string, status domain.RideStatus) *domain.Ride {
	ride := &domain.Ride{
		ID:                   id,
		StudentID:            studentID,
		PickupLocation:       "Main Gate",
		PickupLat:            12.9716,
		PickupLng:            77.5946,
		DropoffLocation:      "Library",
		DropoffLat:           12.9352,
		DropoffLng:           77.6245,
		DistanceKm:           5.18,
		Fare:                 150,
		EstimatedDurationMin: 13,
		Status:               status,
		RequestedAt:          time.Now(),
	}
	if captainID != "" {
		ride.CaptainID = &captainID
	}
	return ride
}

type rideFixture struct {
	users    *mocks.MockUserRepository
	rides    *mocks.MockRideRepository
	captains *mocks.MockCaptainRepository
	service  *service.RideService
}

func newRideFixture() *rideFixture {
	users := mocks.NewMockUserRepository()
	rides := mocks.NewMockRideRepository()
	captains := mocks.NewMockCaptainRepository(users)
	return &rideFixture{
		users:    users,
		rides:    rides,
		captains: captains,
		service:  service.NewRideService(rides, captains, users, nil, service.DefaultFareConfig()),
	}
}

type paymentFixture struct {
	rides    *mocks.MockRideRepository
	wallets  *mocks.MockWalletRepository
	payments *mocks.MockPaymentRepository
	locks    *mocks.MockLockStore
	service  *service.PaymentService
}

func newPaymentFixture() *paymentFixture {
	rides := mocks.NewMockRideRepository()
	wallets := mocks.NewMockWalletRepository()
	payments := mocks.NewMockPaymentRepository(wallets)
	locks := mocks.NewMockLockStore()
	return &paymentFixture{
		rides:    rides,
		wallets:  wallets,
		payments: payments,
		locks:    locks,
		service:  service.NewPaymentService(payments, wallets, rides, locks, nil, decimal.Zero),
	}
}

// completedRide stores a completed ₹150 ride and funds both wallets.
func (f *paymentFixture) completedRide(rideID string, studentBalance string) *domain.Ride {
	ride := newRide(rideID, "student-1", "captain-1", domain.RideStatusCompleted)
	f.rides.AddRide(ride)
	f.wallets.SetBalance("student-1", decimal.RequireFromString(studentBalance))
	f.wallets.SetBalance("captain-1", decimal.Zero)
	return ride
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
