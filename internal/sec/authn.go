package sec

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	// ErrUnauthenticated is returned when a request carries no credentials.
	ErrUnauthenticated = errors.New("access denied")
	// ErrInvalidToken is returned for a malformed, forged, or expired token,
	// or an Authorization header without the bearer scheme.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials is returned when a login attempt fails. It does not
	// say whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const bearerPrefix = "Bearer "

// Authenticator ties credential verification to token issuance.
type Authenticator struct {
	creds  Credentials
	tokens *Tokens
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(creds Credentials, tokens *Tokens) *Authenticator {
	return &Authenticator{creds: creds, tokens: tokens}
}

// Login exchanges a username and password for a signed token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" || !a.creds.Verify(ctx, username, password) {
		return "", ErrInvalidCredentials
	}
	token, _, err := a.tokens.Issue(username)
	return token, err
}

// Authenticate resolves the claims from the value of an Authorization header.
// An empty header yields [ErrUnauthenticated]; anything else that is not a
// valid bearer token yields [ErrInvalidToken].
func (a *Authenticator) Authenticate(header string) (Claims, error) {
	if header == "" {
		return Claims{}, ErrUnauthenticated
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return Claims{}, ErrInvalidToken
	}
	return a.tokens.Verify(token)
}

// Middleware rejects requests without a valid bearer token: 401 when the
// Authorization header is missing and 403 when it is present but invalid.
// Verified claims are stored on the request context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			claims, err := a.Authenticate(req.Header.Get(echo.HeaderAuthorization))
			switch {
			case errors.Is(err, ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied").SetInternal(err)
			case err != nil:
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token").SetInternal(err)
			}
			c.SetRequest(req.WithContext(SetClaims(req.Context(), claims)))
			return next(c)
		}
	}
}

type claimsKey struct{}

// GetClaims returns the claims of the authenticated caller. The boolean is
// false if the context has no authenticated caller.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(Claims)
	return claims, ok
}

// SetClaims stores claims on the context. [Authenticator.Middleware]
// automatically injects this information; this function is provided as a
// convenience for testing.
func SetClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
