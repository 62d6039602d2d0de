package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerStartsUnknown(t *testing.T) {
	m := NewManager(newTestClient(t, &recordingTransport{}, NewMemoryStore()))

	require.Equal(t, StateUnknown, m.State())
	require.True(t, m.IsLoading())
	require.False(t, m.IsAuthenticated())

	s := m.Snapshot()
	require.True(t, s.IsLoading)
	require.Nil(t, s.User)
}

func TestManagerHydrateToAnonymous(t *testing.T) {
	rt := &recordingTransport{}
	m := NewManager(newTestClient(t, rt, NewMemoryStore()))

	s := m.Hydrate(context.Background())
	require.False(t, s.IsLoading)
	require.Nil(t, s.User)
	require.Equal(t, StateAnonymous, m.State())
	require.Zero(t, rt.calls)
}

func TestManagerHydrateRunsOnce(t *testing.T) {
	rt := &recordingTransport{
		respond: func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"success":true,"data":{"id":"u1","email":"a@b.com"}}`), nil
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Set(Record{Token: "jwt-abc", User: User{ID: "u1"}}))
	m := NewManager(newTestClient(t, rt, store))

	first := m.Hydrate(context.Background())
	second := m.Hydrate(context.Background())

	require.Equal(t, 1, rt.calls, "verification must not be re-entered")
	require.Equal(t, first.User.ID, second.User.ID)
}

func TestManagerLoginTransition(t *testing.T) {
	m := NewManager(newTestClient(t, &recordingTransport{}, NewMemoryStore()))
	m.Hydrate(context.Background())
	require.Equal(t, StateAnonymous, m.State())

	s, err := m.Login(context.Background(), "demo@mbongopay.io", "demo123")
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, m.State())
	require.Equal(t, "test-user-123", s.User.ID)

	user := m.CurrentUser()
	require.NotNil(t, user)
	user.Email = "mutated@example.com"
	require.Equal(t, "demo@mbongopay.io", m.CurrentUser().Email, "CurrentUser must return a copy")
}

func TestManagerFailedLoginLeavesStateUnchanged(t *testing.T) {
	rt := &recordingTransport{
		respond: func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`), nil
		},
	}
	m := NewManager(newTestClient(t, rt, NewMemoryStore()))
	m.Hydrate(context.Background())

	_, err := m.Login(context.Background(), "jane@example.com", "wrongpass")
	require.Error(t, err)
	require.Equal(t, StateAnonymous, m.State())
}

func TestManagerLogoutIdempotent(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(newTestClient(t, &recordingTransport{}, store))
	m.Hydrate(context.Background())

	_, err := m.Login(context.Background(), "+15551234567", "demo123")
	require.NoError(t, err)
	require.True(t, m.IsAuthenticated())

	require.NoError(t, m.Logout(context.Background()))
	require.Equal(t, StateAnonymous, m.State())
	_, ok, _ := store.Get()
	require.False(t, ok)

	require.NoError(t, m.Logout(context.Background()))
	require.Equal(t, StateAnonymous, m.State())
	_, ok, _ = store.Get()
	require.False(t, ok)
}

func TestManagerRegisterWithAutoSession(t *testing.T) {
	rt := &recordingTransport{
		respond: func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusCreated, `{"success":true,"data":{"token":"jwt-new","id":"u9","email":"n@e.com"}}`), nil
		},
	}
	m := NewManager(newTestClient(t, rt, NewMemoryStore()))
	m.Hydrate(context.Background())

	s, err := m.Register(context.Background(), SignupInput{Email: "n@e.com", Password: "longenough", UserType: UserTypeConsumer})
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())
	require.Equal(t, StateAuthenticated, m.State())
}

func TestManagerRegisterWithoutTokenKeepsState(t *testing.T) {
	rt := &recordingTransport{
		respond: func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusCreated, `{"success":true,"data":{"id":"b1","email":"b@e.com"}}`), nil
		},
	}
	m := NewManager(newTestClient(t, rt, NewMemoryStore()))
	m.Hydrate(context.Background())

	s, err := m.Register(context.Background(), SignupInput{Email: "b@e.com", Password: "longenough", UserType: UserTypeBusiness})
	require.NoError(t, err)
	require.False(t, s.IsAuthenticated())
	require.Equal(t, StateAnonymous, m.State())
}

// Round-trip: a successful login followed by a fresh manager over the same
// store reconstructs the same user, as a page reload would.
func TestManagerReloadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	first := NewManager(newTestClient(t, &recordingTransport{}, store))
	first.Hydrate(context.Background())

	s, err := first.Login(context.Background(), "+15551234567", "demo123")
	require.NoError(t, err)

	second := NewManager(newTestClient(t, &recordingTransport{}, store))
	reloaded := second.Hydrate(context.Background())

	require.True(t, reloaded.IsAuthenticated())
	require.Equal(t, s.User.ID, reloaded.User.ID)
	require.Equal(t, s.User.Email, reloaded.User.Email)
}
