package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"campusride/internal/domain"
	"campusride/internal/middleware"
	"campusride/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// FareQuoteRequest is the HTTP request body for a fare estimate.
type FareQuoteRequest struct {
	PickupLat  *float64 `json:"pickupLat" binding:"required"`
	PickupLng  *float64 `json:"pickupLng" binding:"required"`
	DropoffLat *float64 `json:"dropoffLat" binding:"required"`
	DropoffLng *float64 `json:"dropoffLng" binding:"required"`
}

// CreateRideRequest is the HTTP request body for requesting a ride.
type CreateRideRequest struct {
	PickupLocation  string   `json:"pickupLocation" binding:"required"`
	PickupLat       *float64 `json:"pickupLat" binding:"required"`
	PickupLng       *float64 `json:"pickupLng" binding:"required"`
	DropoffLocation string   `json:"dropoffLocation" binding:"required"`
	DropoffLat      *float64 `json:"dropoffLat" binding:"required"`
	DropoffLng      *float64 `json:"dropoffLng" binding:"required"`
	Instructions    string   `json:"instructions"`
}

// UpdateRideStatusRequest is the HTTP request body for a status change.
type UpdateRideStatusRequest struct {
	Status             string `json:"status" binding:"required,ride_status"`
	CancellationReason string `json:"cancellation_reason"`
}

// FareQuoteResponse is the HTTP response for a fare estimate.
type FareQuoteResponse struct {
	Success           bool    `json:"success"`
	Message           string  `json:"message"`
	Distance          float64 `json:"distance"`
	Fare              float64 `json:"fare"`
	EstimatedDuration int     `json:"estimatedDuration"`
}

// CreateRideResponse is the HTTP response for requesting a ride.
type CreateRideResponse struct {
	Success           bool    `json:"success"`
	Message           string  `json:"message"`
	RideID            string  `json:"rideId"`
	Fare              float64 `json:"fare"`
	Distance          float64 `json:"distance"`
	EstimatedDuration int     `json:"estimatedDuration"`
	AvailableCaptains int     `json:"availableCaptains"`
}

// RideResponse is the public view of a ride.
type RideResponse struct {
	ID                 string     `json:"id"`
	StudentID          string     `json:"studentId"`
	CaptainID          string     `json:"captainId,omitempty"`
	PickupLocation     string     `json:"pickupLocation"`
	PickupLat          float64    `json:"pickupLat"`
	PickupLng          float64    `json:"pickupLng"`
	DropoffLocation    string     `json:"dropoffLocation"`
	DropoffLat         float64    `json:"dropoffLat"`
	DropoffLng         float64    `json:"dropoffLng"`
	Instructions       string     `json:"instructions,omitempty"`
	Distance           float64    `json:"distance"`
	Fare               float64    `json:"fare"`
	EstimatedDuration  int        `json:"estimatedDuration"`
	Status             string     `json:"status"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	RequestedAt        time.Time  `json:"requestedAt"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	ArrivedAt          *time.Time `json:"arrivedAt,omitempty"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
}

// RideEnvelope wraps a single ride.
type RideEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Ride    RideResponse `json:"ride"`
}

// RideListResponse wraps a list of rides.
type RideListResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Rides   []RideResponse `json:"rides"`
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:                 r.ID,
		StudentID:          r.StudentID,
		CaptainID:          r.AssignedCaptain(),
		PickupLocation:     r.PickupLocation,
		PickupLat:          r.PickupLat,
		PickupLng:          r.PickupLng,
		DropoffLocation:    r.DropoffLocation,
		DropoffLat:         r.DropoffLat,
		DropoffLng:         r.DropoffLng,
		Instructions:       r.Instructions,
		Distance:           r.DistanceKm,
		Fare:               r.Fare,
		EstimatedDuration:  r.EstimatedDurationMin,
		Status:             string(r.Status),
		CancellationReason: r.CancellationReason,
		RequestedAt:        r.RequestedAt,
		AcceptedAt:         r.AcceptedAt,
		ArrivedAt:          r.ArrivedAt,
		StartedAt:          r.StartedAt,
		CompletedAt:        r.CompletedAt,
		CancelledAt:        r.CancelledAt,
	}
}

func toRideList(rides []*domain.Ride) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, toRideResponse(r))
	}
	return out
}

// CalculateFare handles POST /api/rides/calculate-fare
func (h *RideHandler) CalculateFare(c *gin.Context) {
	var req FareQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	quote, err := h.rideService.QuoteFare(service.FareQuoteRequest{
		PickupLat:  *req.PickupLat,
		PickupLng:  *req.PickupLng,
		DropoffLat: *req.DropoffLat,
		DropoffLng: *req.DropoffLng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, FareQuoteResponse{
		Success:           true,
		Message:           "fare calculated",
		Distance:          quote.DistanceKm,
		Fare:              quote.Fare,
		EstimatedDuration: quote.EstimatedDuration,
	})
}

// RequestRide handles POST /api/rides/request
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.rideService.RequestRide(c.Request.Context(), service.CreateRideRequest{
		StudentID:       middleware.UserID(c),
		PickupLocation:  req.PickupLocation,
		PickupLat:       *req.PickupLat,
		PickupLng:       *req.PickupLng,
		DropoffLocation: req.DropoffLocation,
		DropoffLat:      *req.DropoffLat,
		DropoffLng:      *req.DropoffLng,
		Instructions:    req.Instructions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateRideResponse{
		Success:           true,
		Message:           "ride requested",
		RideID:            result.Ride.ID,
		Fare:              result.Ride.Fare,
		Distance:          result.Ride.DistanceKm,
		EstimatedDuration: result.Ride.EstimatedDurationMin,
		AvailableCaptains: len(result.AvailableCaptains),
	})
}

// AvailableRides handles GET /api/rides/available
func (h *RideHandler) AvailableRides(c *gin.Context) {
	rides, err := h.rideService.ListOpenRides(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideListResponse{
		Success: true,
		Message: "ok",
		Rides:   toRideList(rides),
	})
}

// History handles GET /api/rides/history
func (h *RideHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	rides, err := h.rideService.ListHistory(c.Request.Context(), middleware.UserID(c), middleware.Role(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideListResponse{
		Success: true,
		Message: "ok",
		Rides:   toRideList(rides),
	})
}

// GetRide handles GET /api/rides/:rideId
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("rideId"), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideEnvelope{
		Success: true,
		Message: "ok",
		Ride:    toRideResponse(ride),
	})
}

// AcceptRide handles POST /api/rides/:rideId/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	ride, err := h.rideService.AcceptRide(c.Request.Context(), c.Param("rideId"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideEnvelope{
		Success: true,
		Message: "ride accepted",
		Ride:    toRideResponse(ride),
	})
}

// UpdateStatus handles PUT /api/rides/:rideId/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req UpdateRideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ride, err := h.rideService.UpdateRideStatus(c.Request.Context(), service.UpdateStatusRequest{
		RideID:             c.Param("rideId"),
		UserID:             middleware.UserID(c),
		Status:             domain.RideStatus(req.Status),
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideEnvelope{
		Success: true,
		Message: "ride " + string(ride.Status),
		Ride:    toRideResponse(ride),
	})
}
