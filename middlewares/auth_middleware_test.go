package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func runRequest(token string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if captured == nil {
		captured = c
	}
	return rec, captured
}

func TestRequireAuthRoundTrip(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"sub":  "user-1",
		"role": "teacher",
		"name": "Prof. Desai",
		"prn":  "",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, c := runRequest(token, RequireAuth(testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", c.Get("user_id"))
	assert.Equal(t, "teacher", c.Get("role"))
	assert.Equal(t, "Prof. Desai", c.Get("name"))
}

func TestRequireAuthRejects(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		rec, _ := runRequest("", RequireAuth(testSecret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix(),
		})
		s, err := tok.SignedString([]byte("some-other-secret"))
		require.NoError(t, err)
		rec, _ := runRequest(s, RequireAuth(testSecret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix(),
		})
		rec, _ := runRequest(token, RequireAuth(testSecret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"sub": "user-2", "role": "attendance_taker",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := runRequest(token, RequireAuth(testSecret), RequireRole("attendance_taker", "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = runRequest(token, RequireAuth(testSecret), RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
