package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusride/internal/repository"
	"campusride/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse is a success response with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unexpected errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}
	c.JSON(code, ErrorResponse{Success: false, Message: message})
}

// respondBadRequest rejects a malformed request body.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: bindingMessage(err)})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDropoffLocation),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidRadius),
		errors.Is(err, service.ErrInvalidRideStatus),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrNotACaptain),
		errors.Is(err, service.ErrCannotDeactivateSelf),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrCaptainLocationUnknown):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Insufficient funds
	case errors.Is(err, repository.ErrInsufficientBalance):
		return http.StatusPaymentRequired

	// Conflict errors
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRideNotAvailable),
		errors.Is(err, service.ErrActiveRideExists),
		errors.Is(err, service.ErrRideNotCompleted),
		errors.Is(err, service.ErrPaymentExists),
		errors.Is(err, service.ErrPaymentInProgress),
		errors.Is(err, service.ErrPaymentNotPending),
		errors.Is(err, service.ErrPaymentAlreadyRefunded),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrStaleState):
		return http.StatusConflict

	// Forbidden errors
	case errors.Is(err, service.ErrNotRideParticipant),
		errors.Is(err, service.ErrCaptainOnlyTransition),
		errors.Is(err, service.ErrCaptainNotEligible),
		errors.Is(err, service.ErrNotPaymentOwner),
		errors.Is(err, service.ErrAccountInactive):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
