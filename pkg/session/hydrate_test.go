package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHydrateEmptyStore(t *testing.T) {
	rt := &recordingTransport{}
	c := newTestClient(t, rt, NewMemoryStore())

	s := c.Hydrate(context.Background())
	require.Nil(t, s.User)
	require.False(t, s.IsAuthenticated())
	require.False(t, s.IsLoading)
	require.Zero(t, rt.calls)
}

func TestHydrateSentinelTokenUsesSnapshot(t *testing.T) {
	rt := &recordingTransport{}
	store := NewMemoryStore()
	user, _ := matchDemo("+15551234567", "demo123")
	require.NoError(t, store.Set(Record{Token: SentinelToken, User: user}))

	c := newTestClient(t, rt, store)
	s := c.Hydrate(context.Background())

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "test-user-123", s.User.ID)
	require.Zero(t, rt.calls, "demo hydration must work with no backend reachable")
}

func TestHydrateVerifiesRealToken(t *testing.T) {
	rt := &recordingTransport{
		respond: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK,
				`{"success":true,"data":{"id":"u1","email":"a@b.com","firstName":"Ada","kycStatus":"verified"}}`), nil
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Set(Record{Token: "jwt-abc", User: User{ID: "stale"}}))

	c := newTestClient(t, rt, store)
	s := c.Hydrate(context.Background())

	require.Equal(t, 1, rt.calls)
	require.Equal(t, "Bearer jwt-abc", rt.lastReq.Header.Get("Authorization"))
	require.Equal(t, http.MethodGet, rt.lastReq.Method)
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "u1", s.User.ID)

	// snapshot refreshed from the verify response
	rec, ok, _ := store.Get()
	require.True(t, ok)
	require.Equal(t, "u1", rec.User.ID)
	require.Equal(t, "jwt-abc", rec.Token)
}

func TestHydrateRejectedTokenClearsStore(t *testing.T) {
	rt := &recordingTransport{
		respond: func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"success":false,"message":"token invalidated"}`), nil
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Set(Record{Token: "expired-jwt", User: User{ID: "u1"}}))

	c := newTestClient(t, rt, store)
	s := c.Hydrate(context.Background())

	require.False(t, s.IsAuthenticated())
	_, ok, _ := store.Get()
	require.False(t, ok, "a rejected token must not remain in storage")
}

func TestHydrateUnreachableBackendClearsStore(t *testing.T) {
	ft := &failingTransport{}
	store := NewMemoryStore()
	require.NoError(t, store.Set(Record{Token: "jwt-abc", User: User{ID: "u1"}}))

	c := newTestClient(t, ft, store)
	s := c.Hydrate(context.Background())

	require.False(t, s.IsAuthenticated())
	_, ok, _ := store.Get()
	require.False(t, ok)
}

func TestHydrateMalformedVerifyBodyResolvesAnonymous(t *testing.T) {
	rt := &recordingTransport{
		respond: func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `not json`), nil
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Set(Record{Token: "jwt-abc", User: User{ID: "u1"}}))

	c := newTestClient(t, rt, store)
	s := c.Hydrate(context.Background())
	require.False(t, s.IsAuthenticated())
}
