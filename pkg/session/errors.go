package session

import "errors"

// ErrorKind classifies login failures for the calling form.
type ErrorKind int

const (
	// KindInvalidCredentials means the backend rejected the identifier/secret pair.
	KindInvalidCredentials ErrorKind = iota + 1
	// KindUnreachable means the authentication service could not be reached in time.
	KindUnreachable
	// KindMalformedResponse means the backend claimed success but the payload
	// was missing the token or user record.
	KindMalformedResponse
)

// User-facing fallback messages. Raw transport errors are never surfaced.
const (
	msgInvalidCredentials = "invalid credentials"
	msgUnreachable        = "could not reach authentication service"
	msgMalformedResponse  = "authentication service returned an unexpected response"
)

// AuthError is the typed failure returned by Login and Register. Message is
// safe to render to the end user.
type AuthError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.cause
}

func invalidCredentials(message string) *AuthError {
	if message == "" {
		message = msgInvalidCredentials
	}
	return &AuthError{Kind: KindInvalidCredentials, Message: message}
}

func unreachable(cause error) *AuthError {
	return &AuthError{Kind: KindUnreachable, Message: msgUnreachable, cause: cause}
}

func malformed(cause error) *AuthError {
	return &AuthError{Kind: KindMalformedResponse, Message: msgMalformedResponse, cause: cause}
}

// ErrSessionExpired marks a verify-endpoint rejection during hydration. It is
// benign: hydration converts it into an anonymous session rather than an error.
var ErrSessionExpired = errors.New("session expired")

// KindOf extracts the ErrorKind from an error chain, or zero when the error
// is not an AuthError.
func KindOf(err error) ErrorKind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}
