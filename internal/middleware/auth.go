package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/inkwell-hq/inkwell-api/internal/services"
)

// Context keys set by Auth for downstream handlers.
const (
	ctxUserID    = "auth.userID"
	ctxUserEmail = "auth.userEmail"
)

// Auth rejects requests without a valid bearer token and stashes the token's
// identity in the request context.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		raw, errMsg := bearerToken(c)
		if errMsg != "" {
			c.Unauthorized(errMsg)
			return
		}

		claims, err := jwtService.ValidateAccessToken(raw)
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Next()
	}
}

func bearerToken(c *drift.Context) (token, errMsg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || rest == "" {
		return "", "invalid authorization header format"
	}
	return rest, ""
}

// GetUserID returns the authenticated user, or uuid.Nil outside Auth.
func GetUserID(c *drift.Context) uuid.UUID {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if v, ok := c.Get(ctxUserEmail); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
