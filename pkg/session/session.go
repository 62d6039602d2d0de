// Package session implements the client-side authentication session
// lifecycle shared by the MbongoPay front-end hosts: credential submission,
// durable token persistence, startup hydration against the verify endpoint,
// a reserved demo-mode fallback and logout.
//
// Client performs the individual operations; Manager composes them into the
// Unknown/Anonymous/Authenticated state machine the UI consumes.
package session

// Session is the in-memory authentication snapshot handed to callers.
type Session struct {
	// User is nil while anonymous.
	User *User
	// IsLoading is true until the first hydration settles.
	IsLoading bool
}

// IsAuthenticated reports whether a user is attached to the session.
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// State is the lifecycle position of a Manager.
type State int

const (
	// StateUnknown holds from construction until hydration settles. Route
	// guards must treat it as "not yet known", not as anonymous.
	StateUnknown State = iota
	// StateAnonymous means no valid session exists.
	StateAnonymous
	// StateAuthenticated means a user is signed in and the credential record
	// is settled in the store.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
