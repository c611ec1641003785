package service_test

import (
	"context"
	"errors"
	"testing"

	"campusride/internal/domain"
	"campusride/internal/mocks"
	"campusride/internal/service"
)

func TestNotifyRideStatusChanged_GoesToOtherParticipant(t *testing.T) {
	t.Parallel()

	publisher := mocks.NewMockPublisher()
	notifications := service.NewNotificationService(publisher)
	ride := newRide("ride-1", "student-1", "captain-1", domain.RideStatusCancelled)

	notifications.NotifyRideStatusChanged(context.Background(), ride, "student-1")
	notifications.NotifyRideStatusChanged(context.Background(), ride, "captain-1")

	keys := publisher.RoutingKeys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 events, got %d", len(keys))
	}
}

func TestNotifyRideStatusChanged_UnassignedRide_SkipsCaptain(t *testing.T) {
	t.Parallel()

	publisher := mocks.NewMockPublisher()
	notifications := service.NewNotificationService(publisher)
	ride := newRide("ride-1", "student-1", "", domain.RideStatusCancelled)

	notifications.NotifyRideStatusChanged(context.Background(), ride, "student-1")

	if n := len(publisher.RoutingKeys()); n != 0 {
		t.Errorf("expected no event without a captain, got %d", n)
	}
}

func TestNotification_PublishFailure_DoesNotPanic(t *testing.T) {
	t.Parallel()

	publisher := mocks.NewMockPublisher()
	publisher.PublishError = errors.New("broker down")
	notifications := service.NewNotificationService(publisher)

	notifications.NotifyKYCReviewed(context.Background(), "captain-1", domain.KYCApproved)

	if n := len(publisher.RoutingKeys()); n != 1 {
		t.Errorf("expected 1 publish attempt, got %d", n)
	}
}

func TestNotification_WithoutPublisher_OnlyLogs(t *testing.T) {
	t.Parallel()

	notifications := service.NewNotificationService(nil)
	notifications.NotifyKYCReviewed(context.Background(), "captain-1", domain.KYCRejected)
}
