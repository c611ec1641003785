package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusride/internal/domain"
	"campusride/internal/middleware"
	"campusride/internal/service"
)

const dateLayout = "2006-01-02"

// AdminHandler handles HTTP requests for platform administration.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ReviewKYCRequest is the HTTP request body for a KYC decision.
type ReviewKYCRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// UserListResponse wraps a list of accounts.
type UserListResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Users   []UserResponse `json:"users"`
}

// EarningsResponse is the HTTP response for the platform earnings report.
type EarningsResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	TotalFees    float64   `json:"totalFees"`
	PaymentCount int       `json:"paymentCount"`
	AverageFee   float64   `json:"averageFee"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}

// PendingCaptains handles GET /api/admin/captains/pending
func (h *AdminHandler) PendingCaptains(c *gin.Context) {
	captains, err := h.adminService.ListPendingCaptains(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(captains))
	for _, u := range captains {
		out = append(out, toUserResponse(u))
	}

	respondJSON(c, http.StatusOK, UserListResponse{
		Success: true,
		Message: "ok",
		Users:   out,
	})
}

// ReviewKYC handles PUT /api/admin/captains/:id/kyc
func (h *AdminHandler) ReviewKYC(c *gin.Context) {
	var req ReviewKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	captain, err := h.adminService.ReviewKYC(c.Request.Context(), c.Param("id"), req.Status == string(domain.KYCApproved))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UserEnvelope{
		Success: true,
		Message: "kyc " + string(captain.KYCStatus),
		User:    toUserResponse(captain),
	})
}

// DeactivateUser handles PUT /api/admin/users/:id/deactivate
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	if err := h.adminService.DeactivateUser(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, MessageResponse{Success: true, Message: "user deactivated"})
}

// Earnings handles GET /api/admin/earnings?start=&end=
func (h *AdminHandler) Earnings(c *gin.Context) {
	from, err := parseReportTime(c.Query("start"), false)
	if err != nil {
		respondError(c, service.ErrInvalidDateRange)
		return
	}
	to, err := parseReportTime(c.Query("end"), true)
	if err != nil {
		respondError(c, service.ErrInvalidDateRange)
		return
	}

	earnings, err := h.adminService.PlatformEarnings(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EarningsResponse{
		Success:      true,
		Message:      "ok",
		TotalFees:    earnings.TotalFees.InexactFloat64(),
		PaymentCount: earnings.PaymentCount,
		AverageFee:   earnings.AverageFee.InexactFloat64(),
		From:         earnings.From,
		To:           earnings.To,
	})
}

// parseReportTime accepts RFC3339 or a bare date. A bare end date covers the
// whole day, so it is moved to the following midnight.
func parseReportTime(value string, end bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if end {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
