package service

import "errors"

var (
	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidPaymentID is returned when payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidPickupLocation is returned when pickup label or coordinates are invalid.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDropoffLocation is returned when dropoff label or coordinates are invalid.
	ErrInvalidDropoffLocation = errors.New("invalid dropoff location")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidRadius is returned when a search radius is out of range.
	ErrInvalidRadius = errors.New("invalid search radius")

	// ErrInvalidRideStatus is returned when a requested status is unknown.
	ErrInvalidRideStatus = errors.New("invalid ride status")

	// ErrInvalidTransition is returned when a ride cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid ride status transition")

	// ErrRideNotAvailable is returned when a ride is no longer open for acceptance.
	ErrRideNotAvailable = errors.New("ride is no longer available")

	// ErrActiveRideExists is returned when a student already has a ride in progress.
	ErrActiveRideExists = errors.New("student already has an active ride")

	// ErrNotRideParticipant is returned when the caller is neither the ride's student nor its captain.
	ErrNotRideParticipant = errors.New("not a participant of this ride")

	// ErrCaptainOnlyTransition is returned when a student attempts a captain-only status change.
	ErrCaptainOnlyTransition = errors.New("only the assigned captain can make this status change")

	// ErrCaptainNotEligible is returned when a captain is inactive or not KYC approved.
	ErrCaptainNotEligible = errors.New("captain is not approved to drive")

	// ErrCaptainLocationUnknown is returned when a captain has not reported a position.
	ErrCaptainLocationUnknown = errors.New("captain location unknown")

	// ErrRideNotCompleted is returned when paying for a ride that has not completed.
	ErrRideNotCompleted = errors.New("ride is not completed")

	// ErrPaymentExists is returned when a ride has already been paid.
	ErrPaymentExists = errors.New("payment already exists for this ride")

	// ErrPaymentInProgress is returned when another request is settling the same ride.
	ErrPaymentInProgress = errors.New("payment already in progress for this ride")

	// ErrPaymentNotPending is returned when processing a payment that is no longer pending.
	ErrPaymentNotPending = errors.New("payment is not pending")

	// ErrPaymentAlreadyRefunded is returned when refunding a refunded payment.
	ErrPaymentAlreadyRefunded = errors.New("payment already refunded")

	// ErrNotPaymentOwner is returned when a non-admin refunds someone else's payment.
	ErrNotPaymentOwner = errors.New("not the payer of this payment")

	// ErrInvalidPaymentAmount is returned when payment amount is invalid.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentMethod is returned when payment method is not supported.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRole is returned when signing up with a role that cannot self-register.
	ErrInvalidRole = errors.New("invalid role")

	// ErrWeakPassword is returned when a password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrAccountInactive is returned when a deactivated user logs in.
	ErrAccountInactive = errors.New("account is deactivated")

	// ErrNotACaptain is returned when a KYC decision targets a non-captain.
	ErrNotACaptain = errors.New("user is not a captain")

	// ErrCannotDeactivateSelf is returned when an admin deactivates their own account.
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")

	// ErrInvalidDateRange is returned when a report window is empty or inverted.
	ErrInvalidDateRange = errors.New("invalid date range")
)
