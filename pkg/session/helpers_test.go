package session

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
)

// recordingTransport counts requests and answers them with a canned
// responder, so tests can assert on exactly how many network calls happened.
type recordingTransport struct {
	calls    int
	lastReq  *http.Request
	lastBody []byte
	respond  func(req *http.Request) (*http.Response, error)
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.calls++
	rt.lastReq = req
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body.Close()
		rt.lastBody = body
	}
	if rt.respond == nil {
		return jsonResponse(http.StatusNotFound, `{"success":false,"message":"no responder"}`), nil
	}
	return rt.respond(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// failingTransport simulates an unreachable backend.
type failingTransport struct{ calls int }

func (ft *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ft.calls++
	return nil, io.ErrUnexpectedEOF
}

func newTestClient(t *testing.T, rt http.RoundTripper, store Store) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:    "http://auth.test",
		HTTPClient: &http.Client{Transport: rt},
		Store:      store,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func bodyContains(body []byte, fragment string) bool {
	return bytes.Contains(body, []byte(fragment))
}
