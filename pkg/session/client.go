package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Default endpoint paths, matching the reference backend. Hosts fronting a
// legacy backend override them in Config.
const (
	DefaultLoginPath        = "/api/v1/auth/login"
	DefaultMePath           = "/api/v1/auth/me"
	DefaultLogoutPath       = "/api/v1/auth/logout"
	DefaultSignupPathPrefix = "/api/v1/auth/signup-"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultCountryCode = "+1"
)

// Config collects the collaborators a Client needs. Zero values fall back to
// sensible defaults; only BaseURL is mandatory.
type Config struct {
	BaseURL string

	// HTTPClient defaults to one with a 15s timeout.
	HTTPClient *http.Client
	// Store defaults to an in-memory store.
	Store Store
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// DefaultCountryCode is prefixed to phone identifiers without one. Defaults to "+1".
	DefaultCountryCode string

	LoginPath        string
	MePath           string
	LogoutPath       string
	SignupPathPrefix string
}

// Client talks to the authentication backend and keeps the Store settled.
// It holds no session state of its own; Manager layers the state machine on top.
type Client struct {
	baseURL     string
	http        *http.Client
	store       Store
	logger      *slog.Logger
	countryCode string

	loginPath        string
	mePath           string
	logoutPath       string
	signupPathPrefix string
}

// NewClient validates the config and fills in defaults.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	c := &Client{
		baseURL:          cfg.BaseURL,
		http:             cfg.HTTPClient,
		store:            cfg.Store,
		logger:           cfg.Logger,
		countryCode:      cfg.DefaultCountryCode,
		loginPath:        cfg.LoginPath,
		mePath:           cfg.MePath,
		logoutPath:       cfg.LogoutPath,
		signupPathPrefix: cfg.SignupPathPrefix,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.countryCode == "" {
		c.countryCode = defaultCountryCode
	}
	if c.loginPath == "" {
		c.loginPath = DefaultLoginPath
	}
	if c.mePath == "" {
		c.mePath = DefaultMePath
	}
	if c.logoutPath == "" {
		c.logoutPath = DefaultLogoutPath
	}
	if c.signupPathPrefix == "" {
		c.signupPathPrefix = DefaultSignupPathPrefix
	}
	return c, nil
}

// Store exposes the credential store, mainly so hosts can read the
// remember-me preference.
func (c *Client) Store() Store {
	return c.store
}

// envelope is the response shape shared by all auth endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginRequest struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password"`
}

// Login authenticates an identifier/secret pair. Reserved demo pairs are
// answered locally without touching the network; everything else issues
// exactly one request to the login endpoint. On success the credential
// record is persisted before the session is returned.
func (c *Client) Login(ctx context.Context, identifier, secret string) (Session, error) {
	value, isPhone := normalizeIdentifier(identifier, c.countryCode)

	if user, ok := matchDemo(value, secret); ok {
		if err := c.store.Set(Record{Token: SentinelToken, User: user}); err != nil {
			return Session{}, fmt.Errorf("persist demo session: %w", err)
		}
		c.logger.Info("demo session established", "user_id", user.ID)
		return Session{User: &user}, nil
	}

	req := loginRequest{Password: secret}
	if isPhone {
		req.PhoneNumber = value
	} else {
		req.Email = value
	}

	env, err := c.postJSON(ctx, c.loginPath, req, nil)
	if err != nil {
		return Session{}, err
	}
	return c.applyIssuedSession(env)
}

// SignupInput carries the profile fields for Register.
type SignupInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MobileNumber string `json:"mobileNumber"`
	UserType     string `json:"-"`
}

// Register creates an account via the type-specific signup endpoint. When the
// backend auto-issues a session the credential record is persisted exactly as
// for Login; a token-less success returns an empty session and the caller
// logs in separately.
func (c *Client) Register(ctx context.Context, in SignupInput) (Session, error) {
	userType := in.UserType
	if userType == "" {
		userType = UserTypeConsumer
	}
	switch userType {
	case UserTypeConsumer, UserTypeBusiness, UserTypeEnterprise:
	default:
		return Session{}, fmt.Errorf("unknown user type %q", userType)
	}
	if in.MobileNumber != "" {
		in.MobileNumber = normalizePhone(in.MobileNumber, c.countryCode)
	}

	// Duplicate submissions replay the original response instead of creating
	// a second account.
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	env, err := c.postJSON(ctx, c.signupPathPrefix+userType, in, headers)
	if err != nil {
		return Session{}, err
	}

	var issued struct {
		Token string `json:"token"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &issued); err != nil {
			return Session{}, malformed(err)
		}
	}
	if issued.Token == "" {
		c.logger.Info("signup accepted without session", "user_type", userType)
		return Session{}, nil
	}
	return c.applyIssuedSession(env)
}

// Logout invalidates the session server-side on a best-effort basis and then
// clears the store unconditionally. It is idempotent.
func (c *Client) Logout(ctx context.Context) error {
	rec, ok, err := c.store.Get()
	if err != nil {
		c.logger.Warn("read credential record on logout", "error", err)
	}
	if ok && rec.Token != "" && rec.Token != SentinelToken {
		if err := c.postLogout(ctx, rec.Token); err != nil {
			c.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
		}
	}
	return c.store.Clear()
}

// applyIssuedSession decodes a token-bearing envelope, persists the pair and
// returns the populated session.
func (c *Client) applyIssuedSession(env envelope) (Session, error) {
	var issued struct {
		Token string `json:"token"`
	}
	if len(env.Data) == 0 {
		return Session{}, malformed(fmt.Errorf("missing data payload"))
	}
	if err := json.Unmarshal(env.Data, &issued); err != nil {
		return Session{}, malformed(err)
	}
	if issued.Token == "" {
		return Session{}, malformed(fmt.Errorf("success response missing token"))
	}
	user, err := decodePayload(env.Data)
	if err != nil {
		return Session{}, malformed(err)
	}
	if user.ID == "" {
		return Session{}, malformed(fmt.Errorf("user payload missing id"))
	}
	if err := c.store.Set(Record{Token: issued.Token, User: user}); err != nil {
		return Session{}, fmt.Errorf("persist credential record: %w", err)
	}
	return Session{User: &user}, nil
}

// postJSON issues one POST and decodes the shared envelope. A success=false
// envelope becomes an InvalidCredentials error carrying the server message.
func (c *Client) postJSON(ctx context.Context, path string, body any, headers map[string]string) (envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return envelope{}, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("auth request failed", "path", path, "error", err)
		return envelope{}, unreachable(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, malformed(err)
	}
	if !env.Success {
		return envelope{}, invalidCredentials(env.Message)
	}
	return env, nil
}

func (c *Client) postLogout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.logoutPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}
