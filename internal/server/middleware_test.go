package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRouteLimiter_WithoutRedis(t *testing.T) {
	// The memory/sqlite/postgres drivers carry no Redis client, so per-route
	// limits must hold in-process rather than failing open.
	t.Setenv("APP_ENV", "production")

	_, app := newTestServer(t)

	register := func(username string) int {
		status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
			"username":        username,
			"fullName":        "Paciente de Teste",
			"birthDate":       "1990-04-12",
			"password":        "x123",
			"confirmPassword": "x123",
		}, nil)
		return status
	}

	assert.Equal(t, http.StatusCreated, register("ana1"))
	assert.Equal(t, http.StatusCreated, register("ana2"))
	assert.Equal(t, http.StatusCreated, register("ana3"))
	assert.Equal(t, http.StatusTooManyRequests, register("ana4"))
}

func TestAuthRequired(t *testing.T) {
	baseClaims := func() jwt.MapClaims {
		now := time.Now()
		return jwt.MapClaims{
			"sub": "u1",
			"iss": "psidiario-api",
			"aud": "psidiario-client",
			"exp": now.Add(time.Hour).Unix(),
			"iat": now.Unix(),
			"nbf": now.Unix(),
		}
	}

	tests := []struct {
		name           string
		token          func(t *testing.T) string
		expectedStatus int
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				return signToken(t, "test_secret", baseClaims())
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			token:          func(t *testing.T) string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, "other_secret", baseClaims())
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				claims := baseClaims()
				claims["iss"] = "someone-else"
				return signToken(t, "test_secret", claims)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				claims := baseClaims()
				claims["aud"] = "someone-else"
				return signToken(t, "test_secret", claims)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				claims := baseClaims()
				claims["exp"] = time.Now().Add(-time.Hour).Unix()
				return signToken(t, "test_secret", claims)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				claims := baseClaims()
				delete(claims, "sub")
				return signToken(t, "test_secret", claims)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, app := newTestServer(t)

			headers := map[string]string{}
			if token := tt.token(t); token != "" {
				headers["Authorization"] = "Bearer " + token
			}

			status, _ := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, headers)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}
