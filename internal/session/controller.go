package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

const (
	// DashboardPath is the landing destination after login.
	DashboardPath = "/opca/dashboard"

	// LoginPath is where a logged-out session is sent.
	LoginPath = "/auth/login"
)

// Navigator receives the controller's routing decisions. Replace is used
// after login (the login screen should not stay in history), Push for the
// ordinary jump to the login entry point on logout.
type Navigator interface {
	Replace(path string)
	Push(path string)
}

// authAPI is the slice of the API client the controller needs.
type authAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginData, error)
	Me(ctx context.Context) (*domain.User, error)
}

// validator gates whether stored credentials still back a session.
type validator interface {
	IsValid() bool
	PurgeMock() bool
}

// LoginParams carries the credentials plus an optional return URL captured
// before the user was redirected to the login screen.
type LoginParams struct {
	Email     string
	Password  string
	ReturnURL string
}

// ErrCallback receives the raw error when a login attempt fails. It is
// the only error-reporting surface of the login flow; presentation code
// derives the user-facing message from the error's classification.
type ErrCallback func(error)

// Controller owns the in-memory session: the current user, the loading
// flag, and the login/logout transitions. It is the single writer of the
// stored profile. If user is non-nil, a valid non-mock access token is in
// the store; any detected violation forces a logout.
type Controller struct {
	api       authAPI
	store     tokenstore.Store
	validator validator
	nav       Navigator

	mu      sync.RWMutex
	user    *domain.User
	loading bool
}

func NewController(api authAPI, store tokenstore.Store, v validator, nav Navigator) *Controller {
	return &Controller{
		api:       api,
		store:     store,
		validator: v,
		nav:       nav,
		loading:   true,
	}
}

// CurrentUser returns the logged-in profile, or nil.
func (c *Controller) CurrentUser() *domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Loading reports whether a login or the startup reconciliation is in flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Login runs the LoggedOut -> LoggingIn -> LoggedIn transition. On success
// the credentials and profile are persisted, the in-memory user is set,
// and the navigator is sent to the landing destination. On any failure the
// session stays logged out and errCb is invoked exactly once with the raw
// error; Login never fails silently. Overlapping calls are not serialized:
// the last response to arrive wins, matching the single-operator usage
// this client is built for.
func (c *Controller) Login(ctx context.Context, params LoginParams, errCb ErrCallback) {
	c.setLoading(true)

	data, err := c.api.Login(ctx, params.Email, params.Password)
	if err != nil {
		slog.Warn("Login failed", "email", params.Email, "error", err)
		c.setLoading(false)
		if errCb != nil {
			errCb(err)
		}
		return
	}

	c.store.Save(tokenstore.KindAccessToken, data.Token)
	c.store.Save(tokenstore.KindRefreshToken, data.RefreshToken)
	tokenstore.SaveUser(c.store, data.User)

	c.mu.Lock()
	c.user = data.User
	c.loading = false
	c.mu.Unlock()

	dest := c.landingPath(params.ReturnURL, data.User.Role)
	slog.Info("Login succeeded", "user", data.User.ID, "role", data.User.Role, "destination", dest)
	c.nav.Replace(dest)
}

// landingPath picks the post-login destination. A captured return URL wins
// unless it is empty or the bare root. The role branch below is kept as a
// seam for future role-specific dashboards; today every role lands on the
// same page.
func (c *Controller) landingPath(returnURL string, role domain.Role) string {
	if returnURL != "" && returnURL != "/" {
		return returnURL
	}
	if role == domain.RoleAdmin {
		return DashboardPath
	}
	return DashboardPath
}

// Logout clears storage and memory, then sends the navigator to the login
// entry point.
func (c *Controller) Logout() {
	c.store.Clear()

	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	slog.Info("Logged out")
	c.nav.Push(LoginPath)
}

// Bootstrap reconciles the persisted credentials into an in-memory
// session. Run once per process start, before anything trusts
// CurrentUser. Mock credentials are purged unconditionally first; then a
// stored token plus profile that pass validation restore the user, a
// token that fails validation clears everything, and loading ends false
// in every path.
func (c *Controller) Bootstrap() {
	defer c.setLoading(false)

	c.validator.PurgeMock()

	storedToken, hasToken := c.store.Get(tokenstore.KindAccessToken)
	profile, hasProfile := tokenstore.GetUser(c.store)

	switch {
	case hasToken && hasProfile && c.validator.IsValid():
		c.mu.Lock()
		c.user = profile
		c.mu.Unlock()
		slog.Debug("Restored session from stored credentials", "user", profile.ID)
	case hasToken:
		// Present but unusable: expired, unparsable, or missing profile.
		// No user action caused this, so drop it silently.
		slog.Debug("Stored token unusable, clearing credentials", "token_present", storedToken != "")
		c.store.Clear()
	}
}

// RefreshProfile re-fetches the profile through /api/auth/me and updates
// both memory and storage. A failure leaves the session as it was and is
// returned to the caller.
func (c *Controller) RefreshProfile(ctx context.Context) error {
	user, err := c.api.Me(ctx)
	if err != nil {
		return err
	}

	tokenstore.SaveUser(c.store, user)

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return nil
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
