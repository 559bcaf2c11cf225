package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkidjo/train-booking-api/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authorization string) (*httptest.ResponseRecorder, uint64, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint64
	var called bool
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		called = true
		gotID, _ = UserID(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, gotID, called
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewToken(testSecret, 42, 0)
	require.NoError(t, err)

	rec, id, called := runJWT(t, "Bearer "+tok)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), id)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, called := runJWT(t, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(16), body["_code"])
	assert.Equal(t, "Missing auth token", body["message"])
}

func TestJWTAuthBadToken(t *testing.T) {
	rec, _, called := runJWT(t, "Bearer garbage")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid auth token provided", body["message"])
}

func TestJWTAuthWrongScheme(t *testing.T) {
	tok, err := utils.NewToken(testSecret, 42, 0)
	require.NoError(t, err)

	rec, _, called := runJWT(t, "Basic "+tok)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDMissing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
}
