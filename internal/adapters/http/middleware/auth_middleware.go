package middleware

import (
	"errors"
	"strings"

	"churchhub/internal/core/services"
	"churchhub/internal/pkg/jwt"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by SessionMiddleware
const (
	LocalSessionID = "sessionID"
	LocalStore     = "store"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "session_token"

// SessionMiddleware resolves the session token to its store
func SessionMiddleware(sessions *services.SessionManager, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c)
		if token == "" {
			return response.Unauthorized(c, "Session token required")
		}

		claims, err := jwt.ValidateSessionToken(token, secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Session token expired")
			}
			return response.Unauthorized(c, "Invalid session token")
		}

		store, err := sessions.Get(claims.SessionID)
		if err != nil {
			return response.Unauthorized(c, "Sessão expirada ou inexistente.")
		}

		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalStore, store)

		return c.Next()
	}
}

// StoreFrom returns the session store set by SessionMiddleware
func StoreFrom(c *fiber.Ctx) *services.Store {
	store, _ := c.Locals(LocalStore).(*services.Store)
	return store
}

// SessionIDFrom returns the session id set by SessionMiddleware
func SessionIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}

// tokenFrom reads the cookie first, then the Authorization header
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
