package session

import (
	"context"
	"sync"
)

// Manager composes the client operations into the session state machine the
// UI layer consumes. It starts in StateUnknown and moves to Anonymous or
// Authenticated once Hydrate settles; Login and Logout drive the remaining
// transitions. The credential store is always settled by the underlying
// Client before a transition is applied, so a reload can never observe an
// authenticated UI without a stored token.
type Manager struct {
	client *Client

	hydrateOnce sync.Once

	mu    sync.RWMutex
	state State
	user  *User
}

// NewManager wraps a Client. The manager begins in StateUnknown.
func NewManager(client *Client) *Manager {
	return &Manager{client: client, state: StateUnknown}
}

// Hydrate settles the initial state from the credential store. It runs the
// underlying verification at most once per Manager; later calls return the
// current snapshot without re-verifying.
func (m *Manager) Hydrate(ctx context.Context) Session {
	m.hydrateOnce.Do(func() {
		s := m.client.Hydrate(ctx)
		m.mu.Lock()
		m.user = s.User
		if s.User != nil {
			m.state = StateAuthenticated
		} else {
			m.state = StateAnonymous
		}
		m.mu.Unlock()
	})
	return m.Snapshot()
}

// Login authenticates and, on success, transitions to Authenticated. The
// typed AuthError from the client passes through for the form to render.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (Session, error) {
	s, err := m.client.Login(ctx, identifier, secret)
	if err != nil {
		return Session{}, err
	}
	m.setUser(s.User)
	return m.Snapshot(), nil
}

// Register signs up a new account. When the backend auto-issues a session the
// manager transitions to Authenticated; otherwise state is left untouched and
// the caller follows up with Login.
func (m *Manager) Register(ctx context.Context, in SignupInput) (Session, error) {
	s, err := m.client.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	if s.User != nil {
		m.setUser(s.User)
	}
	return m.Snapshot(), nil
}

// Logout clears the session. The backend call inside the client is best
// effort; the local transition to Anonymous happens regardless. Calling
// Logout repeatedly is safe.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.client.Logout(ctx)
	m.setUser(nil)
	return err
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Session{IsLoading: m.state == StateUnknown}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// State reports the lifecycle position.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (m *Manager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// IsLoading reports whether the initial hydration is still outstanding.
func (m *Manager) IsLoading() bool {
	return m.State() == StateUnknown
}

func (m *Manager) setUser(user *User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	if user != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
}
