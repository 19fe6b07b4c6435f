package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihoflaz/opca-admin-dashboard/internal/api"
	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
	"github.com/ihoflaz/opca-admin-dashboard/internal/token"
	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

// fakeNavigator records where the controller sends it.
type fakeNavigator struct {
	replaced []string
	pushed   []string
}

func (n *fakeNavigator) Replace(path string) { n.replaced = append(n.replaced, path) }
func (n *fakeNavigator) Push(path string)    { n.pushed = append(n.pushed, path) }

// fakeAuthAPI returns canned login and profile answers.
type fakeAuthAPI struct {
	loginData *domain.LoginData
	loginErr  error
	meUser    *domain.User
	meErr     error
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (*domain.LoginData, error) {
	return f.loginData, f.loginErr
}

func (f *fakeAuthAPI) Me(_ context.Context) (*domain.User, error) {
	return f.meUser, f.meErr
}

func futureToken(t *testing.T, clock clockwork.Clock) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "u1",
		"exp": clock.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func newTestController(t *testing.T, apiClient authAPI) (*Controller, *tokenstore.MemoryStore, *fakeNavigator, *clockwork.FakeClock) {
	t.Helper()

	store := tokenstore.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	nav := &fakeNavigator{}
	ctrl := NewController(apiClient, store, token.NewValidator(store, clock), nav)
	return ctrl, store, nav, clock
}

func TestLogin_Success(t *testing.T) {
	user := &domain.User{ID: "u1", FullName: "Dr. Vet", Role: domain.RoleUser}
	ctrl, store, nav, _ := newTestController(t, &fakeAuthAPI{
		loginData: &domain.LoginData{Token: "abc", RefreshToken: "def", User: user},
	})

	var cbErrs []error
	ctrl.Login(context.Background(), LoginParams{Email: "vet@example.com", Password: "pw"}, func(err error) {
		cbErrs = append(cbErrs, err)
	})

	assert.Empty(t, cbErrs)
	assert.False(t, ctrl.Loading())
	require.NotNil(t, ctrl.CurrentUser())
	assert.Equal(t, domain.RoleUser, ctrl.CurrentUser().Role)

	tok, ok := store.Get(tokenstore.KindAccessToken)
	require.True(t, ok)
	assert.Equal(t, "abc", tok)
	ref, ok := store.Get(tokenstore.KindRefreshToken)
	require.True(t, ok)
	assert.Equal(t, "def", ref)
	stored, ok := tokenstore.GetUser(store)
	require.True(t, ok)
	assert.Equal(t, "u1", stored.ID)

	assert.Equal(t, []string{DashboardPath}, nav.replaced)
}

func TestLogin_AdminLandsOnSameDashboard(t *testing.T) {
	ctrl, _, nav, _ := newTestController(t, &fakeAuthAPI{
		loginData: &domain.LoginData{Token: "abc", RefreshToken: "def", User: &domain.User{ID: "a1", Role: domain.RoleAdmin}},
	})

	ctrl.Login(context.Background(), LoginParams{Email: "admin@example.com", Password: "pw"}, nil)

	assert.Equal(t, []string{DashboardPath}, nav.replaced)
}

func TestLogin_HonorsReturnURL(t *testing.T) {
	ctrl, _, nav, _ := newTestController(t, &fakeAuthAPI{
		loginData: &domain.LoginData{Token: "abc", RefreshToken: "def", User: &domain.User{ID: "u1", Role: domain.RoleUser}},
	})

	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p", ReturnURL: "/opca/users"}, nil)
	assert.Equal(t, []string{"/opca/users"}, nav.replaced)
}

func TestLogin_RootReturnURLFallsBackToDashboard(t *testing.T) {
	ctrl, _, nav, _ := newTestController(t, &fakeAuthAPI{
		loginData: &domain.LoginData{Token: "abc", RefreshToken: "def", User: &domain.User{ID: "u1", Role: domain.RoleUser}},
	})

	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p", ReturnURL: "/"}, nil)
	assert.Equal(t, []string{DashboardPath}, nav.replaced)
}

func TestLogin_RejectedInvokesCallbackOnce(t *testing.T) {
	rejection := &api.StatusError{StatusCode: 401, Message: "bad credentials"}
	ctrl, store, nav, _ := newTestController(t, &fakeAuthAPI{loginErr: rejection})

	var cbErrs []error
	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p"}, func(err error) {
		cbErrs = append(cbErrs, err)
	})

	require.Len(t, cbErrs, 1)
	var statusErr *api.StatusError
	require.ErrorAs(t, cbErrs[0], &statusErr)
	assert.Equal(t, "bad credentials", statusErr.Message)

	assert.Nil(t, ctrl.CurrentUser())
	assert.False(t, ctrl.Loading())
	_, ok := store.Get(tokenstore.KindAccessToken)
	assert.False(t, ok)
	assert.Empty(t, nav.replaced)
}

func TestLogin_ConnectivityErrorDistinctFromRejection(t *testing.T) {
	connErr := &api.ConnectivityError{URL: "http://localhost:5002/api/auth/login", Err: errors.New("connection refused")}
	ctrl, _, _, _ := newTestController(t, &fakeAuthAPI{loginErr: connErr})

	var got error
	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p"}, func(err error) { got = err })

	require.Error(t, got)
	var asConn *api.ConnectivityError
	assert.ErrorAs(t, got, &asConn)
	assert.NotEqual(t, api.UserMessage(got), api.UserMessage(&api.StatusError{StatusCode: 401, Message: "bad credentials"}))
}

func TestLogin_MalformedPayloadInvokesCallback(t *testing.T) {
	ctrl, store, _, _ := newTestController(t, &fakeAuthAPI{
		loginErr: &api.MalformedResponseError{Message: "login data missing token or user"},
	})

	calls := 0
	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p"}, func(err error) { calls++ })

	assert.Equal(t, 1, calls)
	assert.Nil(t, ctrl.CurrentUser())
	_, ok := store.Get(tokenstore.KindAccessToken)
	assert.False(t, ok)
}

func TestLogin_NilCallbackDoesNotPanic(t *testing.T) {
	ctrl, _, _, _ := newTestController(t, &fakeAuthAPI{loginErr: errors.New("boom")})
	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p"}, nil)
	assert.Nil(t, ctrl.CurrentUser())
}

func TestLogout_ClearsEverything(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleUser}
	ctrl, store, nav, _ := newTestController(t, &fakeAuthAPI{
		loginData: &domain.LoginData{Token: "abc", RefreshToken: "def", User: user},
	})
	ctrl.Login(context.Background(), LoginParams{Email: "e", Password: "p"}, nil)
	require.NotNil(t, ctrl.CurrentUser())

	ctrl.Logout()

	assert.Nil(t, ctrl.CurrentUser())
	for _, kind := range tokenstore.Kinds {
		_, ok := store.Get(kind)
		assert.False(t, ok)
	}
	assert.Equal(t, []string{LoginPath}, nav.pushed)
}

func TestBootstrap_RestoresValidSession(t *testing.T) {
	ctrl, store, _, clock := newTestController(t, &fakeAuthAPI{})
	store.Save(tokenstore.KindAccessToken, futureToken(t, clock))
	tokenstore.SaveUser(store, &domain.User{ID: "u1", Role: domain.RoleVeterinarian})

	ctrl.Bootstrap()

	require.NotNil(t, ctrl.CurrentUser())
	assert.Equal(t, "u1", ctrl.CurrentUser().ID)
	assert.False(t, ctrl.Loading())
}

func TestBootstrap_PurgesMockToken(t *testing.T) {
	ctrl, store, _, _ := newTestController(t, &fakeAuthAPI{})
	store.Save(tokenstore.KindAccessToken, "mock_token_1_1700000000000")
	tokenstore.SaveUser(store, &domain.User{ID: "u1"})

	ctrl.Bootstrap()

	assert.Nil(t, ctrl.CurrentUser())
	assert.False(t, ctrl.Loading())
	for _, kind := range tokenstore.Kinds {
		_, ok := store.Get(kind)
		assert.False(t, ok)
	}
}

func TestBootstrap_ExpiredTokenClearsCredentials(t *testing.T) {
	ctrl, store, _, clock := newTestController(t, &fakeAuthAPI{})

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "u1",
		"exp": clock.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-key"))
	require.NoError(t, err)

	store.Save(tokenstore.KindAccessToken, signed)
	tokenstore.SaveUser(store, &domain.User{ID: "u1"})

	ctrl.Bootstrap()

	assert.Nil(t, ctrl.CurrentUser())
	_, ok := store.Get(tokenstore.KindAccessToken)
	assert.False(t, ok)
}

func TestBootstrap_TokenWithoutProfileClears(t *testing.T) {
	ctrl, store, _, clock := newTestController(t, &fakeAuthAPI{})
	store.Save(tokenstore.KindAccessToken, futureToken(t, clock))

	ctrl.Bootstrap()

	assert.Nil(t, ctrl.CurrentUser())
	_, ok := store.Get(tokenstore.KindAccessToken)
	assert.False(t, ok)
}

func TestBootstrap_EmptyStoreStaysLoggedOut(t *testing.T) {
	ctrl, _, nav, _ := newTestController(t, &fakeAuthAPI{})

	ctrl.Bootstrap()

	assert.Nil(t, ctrl.CurrentUser())
	assert.False(t, ctrl.Loading())
	// Startup reconciliation never navigates; routing is the caller's job.
	assert.Empty(t, nav.replaced)
	assert.Empty(t, nav.pushed)
}

func TestRefreshProfile_UpdatesMemoryAndStore(t *testing.T) {
	ctrl, store, _, _ := newTestController(t, &fakeAuthAPI{
		meUser: &domain.User{ID: "u1", FullName: "Renamed", Role: domain.RoleUser},
	})

	require.NoError(t, ctrl.RefreshProfile(context.Background()))

	assert.Equal(t, "Renamed", ctrl.CurrentUser().FullName)
	stored, ok := tokenstore.GetUser(store)
	require.True(t, ok)
	assert.Equal(t, "Renamed", stored.FullName)
}

func TestRefreshProfile_FailureLeavesSessionAlone(t *testing.T) {
	ctrl, _, _, _ := newTestController(t, &fakeAuthAPI{meErr: errors.New("boom")})

	err := ctrl.RefreshProfile(context.Background())
	require.Error(t, err)
	assert.Nil(t, ctrl.CurrentUser())
}
