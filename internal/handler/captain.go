package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusride/internal/domain"
	"campusride/internal/middleware"
	"campusride/internal/service"
)

// CaptainHandler handles HTTP requests for captain availability.
type CaptainHandler struct {
	captainService *service.CaptainService
	rideService    *service.RideService
}

// NewCaptainHandler creates a new CaptainHandler.
func NewCaptainHandler(captainService *service.CaptainService, rideService *service.RideService) *CaptainHandler {
	return &CaptainHandler{
		captainService: captainService,
		rideService:    rideService,
	}
}

// UpdateCaptainStatusRequest is the HTTP request body for going online or offline.
type UpdateCaptainStatusRequest struct {
	IsOnline *bool `json:"isOnline" binding:"required"`
}

// UpdateLocationRequest is the HTTP request body for updating captain location.
type UpdateLocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// NearbyQuery holds the query parameters of a nearby-captain search.
type NearbyQuery struct {
	Lat    *float64 `form:"lat" binding:"required"`
	Lng    *float64 `form:"lng" binding:"required"`
	Radius float64  `form:"radius"`
}

// CaptainStatusResponse is the HTTP response for captain availability.
type CaptainStatusResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CaptainID string    `json:"captainId"`
	IsOnline  bool      `json:"isOnline"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	LastSeen  time.Time `json:"lastSeen"`
}

// NearbyCaptainsResponse is the HTTP response for a nearby-captain search.
type NearbyCaptainsResponse struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	Count    int                    `json:"count"`
	Captains []domain.NearbyCaptain `json:"captains"`
}

func toCaptainStatus(a *domain.CaptainAvailability, message string) CaptainStatusResponse {
	return CaptainStatusResponse{
		Success:   true,
		Message:   message,
		CaptainID: a.CaptainID,
		IsOnline:  a.IsOnline,
		Lat:       a.Lat,
		Lng:       a.Lng,
		LastSeen:  a.LastSeen,
	}
}

// GetStatus handles GET /api/captains/status
func (h *CaptainHandler) GetStatus(c *gin.Context) {
	availability, err := h.captainService.GetAvailability(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCaptainStatus(availability, "ok"))
}

// UpdateStatus handles PUT /api/captains/status
func (h *CaptainHandler) UpdateStatus(c *gin.Context) {
	var req UpdateCaptainStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	captainID := middleware.UserID(c)
	if err := h.captainService.SetOnline(c.Request.Context(), captainID, *req.IsOnline); err != nil {
		respondError(c, err)
		return
	}

	availability, err := h.captainService.GetAvailability(c.Request.Context(), captainID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "captain is offline"
	if availability.IsOnline {
		message = "captain is online"
	}
	respondJSON(c, http.StatusOK, toCaptainStatus(availability, message))
}

// UpdateLocation handles PUT /api/captains/location
func (h *CaptainHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	err := h.captainService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		CaptainID: middleware.UserID(c),
		Lat:       *req.Lat,
		Lng:       *req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, MessageResponse{Success: true, Message: "location updated"})
}

// Nearby handles GET /api/captains/nearby
func (h *CaptainHandler) Nearby(c *gin.Context) {
	var query NearbyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}

	captains, err := h.rideService.FindNearbyCaptains(c.Request.Context(), *query.Lat, *query.Lng, query.Radius)
	if err != nil {
		respondError(c, err)
		return
	}
	if captains == nil {
		captains = []domain.NearbyCaptain{}
	}

	respondJSON(c, http.StatusOK, NearbyCaptainsResponse{
		Success:  true,
		Message:  "ok",
		Count:    len(captains),
		Captains: captains,
	})
}
