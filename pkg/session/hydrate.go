package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Hydrate reconstructs the session from the credential store at app start.
// It never fails: every failure mode resolves to an anonymous session, and a
// rejected token is cleared from the store so it is not retried on the next
// load.
func (c *Client) Hydrate(ctx context.Context) Session {
	rec, ok, err := c.store.Get()
	if err != nil {
		c.logger.Warn("unreadable credential record, clearing", "error", err)
		if err := c.store.Clear(); err != nil {
			c.logger.Warn("clear credential record", "error", err)
		}
		return Session{}
	}
	if !ok {
		return Session{}
	}

	// Demo sessions rebuild from the snapshot so they work with no backend
	// reachable at all.
	if rec.Token == SentinelToken {
		user := rec.User
		return Session{User: &user}
	}

	user, err := c.whoAmI(ctx, rec.Token)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			c.logger.Info("stored token rejected, signing out")
		} else {
			c.logger.Warn("session verification failed", "error", err)
		}
		if err := c.store.Clear(); err != nil {
			c.logger.Warn("clear credential record", "error", err)
		}
		return Session{}
	}

	// Refresh the snapshot so demo-free offline reads stay current.
	if err := c.store.Set(Record{Token: rec.Token, User: user}); err != nil {
		c.logger.Warn("refresh credential snapshot", "error", err)
	}
	return Session{User: &user}
}

// whoAmI calls the verify endpoint with the bearer token and returns the
// canonical user. A backend rejection maps to ErrSessionExpired; transport
// failures keep their cause so hydration can log them apart.
func (c *Client) whoAmI(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.mePath, nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return User{}, ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return User{}, ErrSessionExpired
	}
	if !env.Success || len(env.Data) == 0 {
		return User{}, ErrSessionExpired
	}
	user, err := decodePayload(env.Data)
	if err != nil || user.ID == "" {
		return User{}, ErrSessionExpired
	}
	return user, nil
}
