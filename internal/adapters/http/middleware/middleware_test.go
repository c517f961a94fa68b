package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/jwt"
)

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "tea") })

	for _, path := range []string{"/ok", "/boom", "/teapot"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.EqualValues(t, 200, entries[0].ContextMap()["status"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, 500, entries[1].ContextMap()["status"])
	assert.Equal(t, "/boom", entries[1].ContextMap()["path"])

	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.EqualValues(t, fiber.StatusTeapot, entries[2].ContextMap()["status"])
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db down") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSessionMiddleware_ActiveSessionOutlivesTTL(t *testing.T) {
	const secret = "test-secret"
	const ttl = 300 * time.Millisecond
	app, sessions := newSessionAppTTL(t, secret, ttl)

	id, _, err := sessions.Create(context.Background())
	require.NoError(t, err)
	token, err := jwt.GenerateSessionToken(id, secret, 0)
	require.NoError(t, err)

	get := func() int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	// used every 100ms for 3x the idle timeout
	deadline := time.Now().Add(3 * ttl)
	for time.Now().Before(deadline) {
		require.Equal(t, http.StatusOK, get())
		time.Sleep(100 * time.Millisecond)
	}

	// idle past the timeout
	time.Sleep(ttl + 100*time.Millisecond)
	assert.Equal(t, http.StatusUnauthorized, get())
}

func newSessionApp(t *testing.T, secret string) (*fiber.App, *services.SessionManager) {
	t.Helper()
	return newSessionAppTTL(t, secret, time.Hour)
}

func newSessionAppTTL(t *testing.T, secret string, ttl time.Duration) (*fiber.App, *services.SessionManager) {
	t.Helper()

	factory := func(ctx context.Context) (*services.Store, error) {
		return services.NewStore(services.StoreDeps{
			Users:  repositories.NewMemoryUserRepository([]domain.User{}),
			Events: repositories.NewMemoryEventRepository([]domain.Event{}),
		}), nil
	}
	sessions := services.NewSessionManager(factory, ttl, zap.NewNop())

	app := fiber.New()
	app.Get("/me", SessionMiddleware(sessions, secret), func(c *fiber.Ctx) error {
		if StoreFrom(c) == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(SessionIDFrom(c))
	})
	return app, sessions
}

func TestSessionMiddleware(t *testing.T) {
	const secret = "test-secret"
	app, sessions := newSessionApp(t, secret)

	id, _, err := sessions.Create(context.Background())
	require.NoError(t, err)
	token, err := jwt.GenerateSessionToken(id, secret, time.Hour)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := jwt.GenerateSessionToken(id, "other", time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("closed session", func(t *testing.T) {
		require.NoError(t, sessions.Delete(id))
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
