package token

import (
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

const (
	// MockTokenPrefix marks placeholder access tokens minted by the mock
	// backend. They must never be treated as a real session.
	MockTokenPrefix = "mock_token_"

	// MockRefreshTokenPrefix is the refresh-token counterpart.
	MockRefreshTokenPrefix = "mock_refresh_token_"
)

// Validator decides whether the stored access token still grants a session.
type Validator struct {
	store tokenstore.Store
	clock clockwork.Clock
}

func NewValidator(store tokenstore.Store, clock clockwork.Clock) *Validator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Validator{store: store, clock: clock}
}

// IsValid reports whether the stored access token is present, real, and
// unexpired. A mock token is never valid and clears the whole store as a
// side effect. A token that cannot be parsed is invalid but is left in
// place: only mock detection destroys state here, so a token that is
// merely unreadable right now is not silently wiped. Expiry likewise does
// not clear; callers decide what an expired session means.
func (v *Validator) IsValid() bool {
	raw, ok := v.store.Get(tokenstore.KindAccessToken)
	if !ok {
		return false
	}

	if strings.HasPrefix(raw, MockTokenPrefix) {
		slog.Debug("Mock access token detected, clearing credentials")
		v.store.Clear()
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		slog.Debug("Stored access token is not a parsable JWT", "error", err)
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		slog.Debug("Stored access token has no usable exp claim")
		return false
	}

	if !v.clock.Now().Before(exp.Time) {
		slog.Debug("Stored access token is expired", "exp", exp.Time)
		return false
	}
	return true
}

// PurgeMock clears the store when either stored token carries a mock
// prefix, and reports whether it did. Run once at startup before any
// validity decision.
func (v *Validator) PurgeMock() bool {
	access, _ := v.store.Get(tokenstore.KindAccessToken)
	refresh, _ := v.store.Get(tokenstore.KindRefreshToken)

	if strings.HasPrefix(access, MockTokenPrefix) || strings.HasPrefix(refresh, MockRefreshTokenPrefix) {
		slog.Debug("Purging mock credentials")
		v.store.Clear()
		return true
	}
	return false
}
