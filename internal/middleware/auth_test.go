package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func router(min int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p",
		AuthMiddleware(&config.Config{JWTSecret: secret}),
		RequireLevel(min),
		func(c *gin.Context) { c.JSON(http.StatusOK, Actor(c)) },
	)
	return r
}

func call(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsStaffToken(t *testing.T) {
	token := sign(t, jwt.MapClaims{
		"sub":        "42",
		"user_level": 5,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	w := call(router(access.LevelStaff), token)
	require.Equal(t, http.StatusOK, w.Code)

	var got access.Actor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, access.Actor{UserID: 42, Level: 5}, got)
}

func TestAuthRejections(t *testing.T) {
	valid := jwt.MapClaims{"sub": 42, "user_level": 1, "exp": time.Now().Add(time.Hour).Unix()}

	expired := jwt.MapClaims{"sub": 42, "user_level": 10, "exp": time.Now().Add(-time.Hour).Unix()}

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, valid).SignedString([]byte("other"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		min   int
		code  int
		err   string
	}{
		{"missing header", "", access.LevelClient, http.StatusUnauthorized, "missing_authorization_header"},
		{"wrong key", otherKey, access.LevelClient, http.StatusUnauthorized, "invalid_token"},
		{"expired", sign(t, expired), access.LevelClient, http.StatusUnauthorized, "invalid_token"},
		{"no level", sign(t, jwt.MapClaims{"sub": 42}), access.LevelClient, http.StatusUnauthorized, "invalid_token_payload"},
		{"client on staff route", sign(t, valid), access.LevelStaff, http.StatusForbidden, "forbidden"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(router(tc.min), tc.token)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), tc.err)
		})
	}
}

func TestNumericClaim(t *testing.T) {
	n, ok := numericClaim(float64(7))
	assert.True(t, ok)
	assert.EqualValues(t, 7, n)

	_, ok = numericClaim(1.5)
	assert.False(t, ok)

	_, ok = numericClaim("abc")
	assert.False(t, ok)

	_, ok = numericClaim(nil)
	assert.False(t, ok)
}
