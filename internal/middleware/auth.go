package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campusride/internal/auth"
	"campusride/internal/domain"
	"campusride/internal/repository"
)

const (
	contextUserID = "userID"
	contextRole   = "role"
)

// Authenticate verifies the bearer token and stores the caller's identity on
// the context. With roles given, callers holding any other role get 403.
func Authenticate(tokens *auth.TokenManager, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortJSON(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextRole, claims.Role)

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			abortJSON(c, http.StatusForbidden, "forbidden")
			return
		}

		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(Role(c), roles) {
			abortJSON(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// UserLookup loads the account a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireActiveAccount rejects tokens whose account has been deactivated
// since the token was issued. It must run after Authenticate.
func RequireActiveAccount(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Request.Context(), UserID(c))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortJSON(c, http.StatusUnauthorized, "account not found")
				return
			}
			log.Printf("account lookup failed on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			abortJSON(c, http.StatusInternalServerError, "internal server error")
			return
		}

		if !user.IsActive {
			abortJSON(c, http.StatusForbidden, "account is deactivated")
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated caller's ID, or "" if unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}

// Role returns the authenticated caller's role, or "" if unauthenticated.
func Role(c *gin.Context) domain.Role {
	if v, ok := c.Get(contextRole); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return ""
}

func hasRole(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

func abortJSON(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}
