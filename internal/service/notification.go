package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusride/internal/domain"
)

// NotificationType is also the routing key events are published under.
type NotificationType string

const (
	NotificationRideRequested    NotificationType = "ride.requested"
	NotificationRideAccepted     NotificationType = "ride.accepted"
	NotificationRideStatus       NotificationType = "ride.status"
	NotificationPaymentCompleted NotificationType = "payment.completed"
	NotificationPaymentRefunded  NotificationType = "payment.refunded"
	NotificationKYCReviewed      NotificationType = "captain.kyc"
)

// Notification represents an event delivered to one recipient.
type Notification struct {
	Type        NotificationType `json:"type"`
	RecipientID string           `json:"recipientId"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Data        map[string]any   `json:"data,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// EventPublisher delivers events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
}

// NotificationService fans ride and payment events out to the broker.
// Without a publisher, events are only logged.
type NotificationService struct {
	publisher EventPublisher
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(publisher EventPublisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

// NotifyRideRequested tells nearby captains about a new ride request.
func (s *NotificationService) NotifyRideRequested(ctx context.Context, ride *domain.Ride, captains []domain.NearbyCaptain) {
	for _, captain := range captains {
		s.send(ctx, Notification{
			Type:        NotificationRideRequested,
			RecipientID: captain.CaptainID,
			Title:       "New Ride Request",
			Message:     fmt.Sprintf("Pickup at %s, %.1f km away. Fare ₹%.2f", ride.PickupLocation, captain.DistanceKm, ride.Fare),
			Data: map[string]any{
				"rideId":     ride.ID,
				"pickupLat":  ride.PickupLat,
				"pickupLng":  ride.PickupLng,
				"fare":       ride.Fare,
				"distanceKm": ride.DistanceKm,
			},
			CreatedAt: time.Now(),
		})
	}
}

// NotifyRideAccepted tells the student a captain is on the way.
func (s *NotificationService) NotifyRideAccepted(ctx context.Context, ride *domain.Ride, captain *domain.User) {
	s.send(ctx, Notification{
		Type:        NotificationRideAccepted,
		RecipientID: ride.StudentID,
		Title:       "Ride Accepted",
		Message:     fmt.Sprintf("%s accepted your ride", captain.Name),
		Data: map[string]any{
			"rideId":       ride.ID,
			"captainId":    captain.ID,
			"captainName":  captain.Name,
			"captainPhone": captain.Phone,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyRideStatusChanged tells the other participant about a status change.
func (s *NotificationService) NotifyRideStatusChanged(ctx context.Context, ride *domain.Ride, changedBy string) {
	recipientID := ride.StudentID
	if changedBy == ride.StudentID {
		recipientID = ride.AssignedCaptain()
	}
	if recipientID == "" {
		return
	}

	data := map[string]any{
		"rideId": ride.ID,
		"status": ride.Status,
	}
	if ride.CancellationReason != "" {
		data["cancellationReason"] = ride.CancellationReason
	}

	s.send(ctx, Notification{
		Type:        NotificationRideStatus,
		RecipientID: recipientID,
		Title:       "Ride Update",
		Message:     fmt.Sprintf("Your ride is now %s", ride.Status),
		Data:        data,
		CreatedAt:   time.Now(),
	})
}

// NotifyPaymentCompleted tells the captain their earnings were settled.
func (s *NotificationService) NotifyPaymentCompleted(ctx context.Context, payment *domain.Payment) {
	s.send(ctx, Notification{
		Type:        NotificationPaymentCompleted,
		RecipientID: payment.CaptainID,
		Title:       "Payment Received",
		Message:     fmt.Sprintf("You earned ₹%s for this ride", payment.CaptainEarnings.StringFixed(2)),
		Data: map[string]any{
			"paymentId": payment.ID,
			"rideId":    payment.RideID,
			"amount":    payment.Amount.StringFixed(2),
			"method":    payment.Method,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyPaymentRefunded tells the student their refund was credited.
func (s *NotificationService) NotifyPaymentRefunded(ctx context.Context, payment *domain.Payment) {
	s.send(ctx, Notification{
		Type:        NotificationPaymentRefunded,
		RecipientID: payment.StudentID,
		Title:       "Payment Refunded",
		Message:     fmt.Sprintf("₹%s has been refunded", payment.Amount.StringFixed(2)),
		Data: map[string]any{
			"paymentId": payment.ID,
			"rideId":    payment.RideID,
			"reason":    payment.RefundReason,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyKYCReviewed tells a captain the outcome of their KYC review.
func (s *NotificationService) NotifyKYCReviewed(ctx context.Context, captainID string, status domain.KYCStatus) {
	s.send(ctx, Notification{
		Type:        NotificationKYCReviewed,
		RecipientID: captainID,
		Title:       "KYC Review",
		Message:     fmt.Sprintf("Your KYC was %s", status),
		Data:        map[string]any{"kycStatus": status},
		CreatedAt:   time.Now(),
	})
}

// send logs the notification and publishes it when a broker is configured.
// Delivery failures never fail the calling operation.
func (s *NotificationService) send(ctx context.Context, notification Notification) {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, string(notification.Type), notification); err != nil {
		log.Printf("failed to publish %s event: %v", notification.Type, err)
	}
}
