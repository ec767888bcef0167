package sec

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T, now time.Time) *Authenticator {
	t.Helper()
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	return NewAuthenticator(
		StaticCredentials{Username: "admin", PasswordHash: hash},
		NewTokens(testSecret, WithClock(fixedClock(now))),
	)
}

func TestAuthenticator_Login(t *testing.T) {
	t.Parallel()

	now := time.Now()
	auth := newTestAuthenticator(t, now)

	token, err := auth.Login(t.Context(), "admin", "password123")
	require.NoError(t, err)
	claims, err := auth.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	for _, creds := range [][2]string{
		{"admin", "wrong"},
		{"root", "password123"},
		{"", "password123"},
		{"admin", ""},
		{"", ""},
	} {
		token, err := auth.Login(t.Context(), creds[0], creds[1])
		require.ErrorIs(t, err, ErrInvalidCredentials, "%q/%q", creds[0], creds[1])
		assert.Empty(t, token)
	}
}

func TestAuthenticator_Authenticate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	auth := newTestAuthenticator(t, now)
	token, err := auth.Login(t.Context(), "admin", "password123")
	require.NoError(t, err)

	expired := newTestAuthenticator(t, now.Add(2*time.Hour))

	tests := []struct {
		name    string
		auth    *Authenticator
		header  string
		wantErr error
	}{
		{name: "valid", auth: auth, header: "Bearer " + token},
		{name: "missing", auth: auth, header: "", wantErr: ErrUnauthenticated},
		{name: "no scheme", auth: auth, header: token, wantErr: ErrInvalidToken},
		{name: "basic scheme", auth: auth, header: "Basic " + token, wantErr: ErrInvalidToken},
		{name: "scheme only", auth: auth, header: "Bearer ", wantErr: ErrInvalidToken},
		{name: "garbage", auth: auth, header: "Bearer garbage", wantErr: ErrInvalidToken},
		{name: "expired", auth: expired, header: "Bearer " + token, wantErr: ErrInvalidToken},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			claims, err := test.auth.Authenticate(test.header)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Username)
		})
	}
}

func TestAuthenticator_Middleware(t *testing.T) {
	t.Parallel()

	auth := newTestAuthenticator(t, time.Now())
	token, err := auth.Login(t.Context(), "admin", "password123")
	require.NoError(t, err)

	srv := echo.New()
	srv.GET("/", func(c echo.Context) error {
		claims, ok := GetClaims(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, claims.Username)
	}, auth.Middleware())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "admin"},
		{name: "missing", wantStatus: http.StatusUnauthorized, wantBody: "Access denied"},
		{name: "invalid", header: "Bearer nope", wantStatus: http.StatusForbidden, wantBody: "Invalid token"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.header != "" {
				req.Header.Set(echo.HeaderAuthorization, test.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), test.wantBody)
		})
	}
}

func TestClaimsContext(t *testing.T) {
	t.Parallel()

	_, ok := GetClaims(t.Context())
	assert.False(t, ok)

	ctx := SetClaims(t.Context(), Claims{Username: "admin"})
	claims, ok := GetClaims(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", claims.Username)
}
