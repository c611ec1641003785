package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"campusride/internal/domain"
	"campusride/internal/middleware"
	"campusride/internal/service"
)

// PaymentHandler handles HTTP requests for payments and wallets.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ProcessPaymentRequest is the HTTP request body for paying for a ride.
type ProcessPaymentRequest struct {
	RideID        string `json:"rideId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,payment_method"`
}

// AddToWalletRequest is the HTTP request body for a wallet top-up.
type AddToWalletRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// RefundRequest is the HTTP request body for a refund.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// PaymentResponse is the public view of a payment.
type PaymentResponse struct {
	ID              string     `json:"id"`
	RideID          string     `json:"rideId"`
	StudentID       string     `json:"studentId"`
	CaptainID       string     `json:"captainId"`
	Amount          float64    `json:"amount"`
	PlatformFee     float64    `json:"platformFee"`
	CaptainEarnings float64    `json:"captainEarnings"`
	PaymentMethod   string     `json:"paymentMethod"`
	Status          string     `json:"status"`
	TransactionRef  string     `json:"transactionRef,omitempty"`
	RefundReason    string     `json:"refundReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	RefundedAt      *time.Time `json:"refundedAt,omitempty"`
}

// PaymentEnvelope wraps a single payment.
type PaymentEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payment PaymentResponse `json:"payment"`
}

// PaymentListResponse wraps a list of payments.
type PaymentListResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Payments []PaymentResponse `json:"payments"`
}

// WalletResponse is the HTTP response for wallet reads and top-ups.
type WalletResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		RideID:          p.RideID,
		StudentID:       p.StudentID,
		CaptainID:       p.CaptainID,
		Amount:          p.Amount.InexactFloat64(),
		PlatformFee:     p.PlatformFee.InexactFloat64(),
		CaptainEarnings: p.CaptainEarnings.InexactFloat64(),
		PaymentMethod:   string(p.Method),
		Status:          string(p.Status),
		TransactionRef:  p.TransactionRef,
		RefundReason:    p.RefundReason,
		CreatedAt:       p.CreatedAt,
		CompletedAt:     p.CompletedAt,
		RefundedAt:      p.RefundedAt,
	}
}

// ProcessPayment handles POST /api/payments/process
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), service.ProcessPaymentRequest{
		RideID:    req.RideID,
		StudentID: middleware.UserID(c),
		Method:    domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PaymentEnvelope{
		Success: true,
		Message: "payment completed",
		Payment: toPaymentResponse(payment),
	})
}

// Wallet handles GET /api/payments/wallet
func (h *PaymentHandler) Wallet(c *gin.Context) {
	balance, err := h.paymentService.GetWalletBalance(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, WalletResponse{
		Success: true,
		Message: "ok",
		Balance: balance.InexactFloat64(),
	})
}

// AddToWallet handles POST /api/payments/wallet/add
func (h *PaymentHandler) AddToWallet(c *gin.Context) {
	var req AddToWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	balance, err := h.paymentService.AddToWallet(c.Request.Context(), middleware.UserID(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, WalletResponse{
		Success: true,
		Message: "wallet topped up",
		Balance: balance.InexactFloat64(),
	})
}

// History handles GET /api/payments/history
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.paymentService.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}

	respondJSON(c, http.StatusOK, PaymentListResponse{
		Success:  true,
		Message:  "ok",
		Payments: out,
	})
}

// Refund handles POST /api/payments/:id/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req RefundRequest
	// The body is optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, err)
		return
	}

	payment, err := h.paymentService.RefundPayment(c.Request.Context(), service.RefundRequest{
		PaymentID:     c.Param("id"),
		RequesterID:   middleware.UserID(c),
		RequesterRole: middleware.Role(c),
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PaymentEnvelope{
		Success: true,
		Message: "payment refunded",
		Payment: toPaymentResponse(payment),
	})
}
