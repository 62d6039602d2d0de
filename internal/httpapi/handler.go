// Package httpapi exposes the authentication endpoints consumed by the
// session clients: login, signup, whoami and logout.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mbongo-pay/mbongo_pay/internal/identity"
	"github.com/mbongo-pay/mbongo_pay/internal/notification"
	"github.com/mbongo-pay/mbongo_pay/internal/token"
)

// Handler wires the identity and token services to the HTTP surface.
type Handler struct {
	ids      *identity.Service
	tokens   *token.Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(ids *identity.Service, tokens *token.Service, notifier notification.Notifier, logger *slog.Logger) *Handler {
	return &Handler{ids: ids, tokens: tokens, notifier: notifier, logger: logger}
}

type loginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type signupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MobileNumber string `json:"mobileNumber"`
}

// userResponse is the canonical camelCase projection of a user.
type userResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	MobileNumber     string `json:"mobileNumber"`
	UserType         string `json:"userType"`
	IsEmailVerified  bool   `json:"isEmailVerified"`
	IsMobileVerified bool   `json:"isMobileVerified"`
	KYCStatus        string `json:"kycStatus"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	Token            string `json:"token,omitempty"`
}

func toUserResponse(user identity.User, tok string) userResponse {
	return userResponse{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		MobileNumber:     user.MobileNumber,
		UserType:         user.UserType,
		IsEmailVerified:  user.IsEmailVerified,
		IsMobileVerified: user.IsMobileVerified,
		KYCStatus:        user.KYCStatus,
		CreatedAt:        user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        user.UpdatedAt.UTC().Format(time.RFC3339),
		Token:            tok,
	}
}

// Login verifies credentials and returns the user profile with an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed request body")
	}

	user, err := h.ids.Authenticate(c.UserContext(), identity.Credentials{
		Email:        req.Email,
		MobileNumber: req.PhoneNumber,
		Password:     req.Password,
	})
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		h.logger.Error("authenticate", "error", err)
		return respondError(c, http.StatusInternalServerError, "authentication failed")
	}

	tok, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		return respondError(c, http.StatusInternalServerError, "authentication failed")
	}

	h.notify(c, notification.KindLogin, user)
	return respondOK(c, http.StatusOK, toUserResponse(user, tok))
}

// Signup registers an account of the given type. Consumer accounts get a
// session issued immediately; business and enterprise accounts are created
// pending review and the response carries no token.
func (h *Handler) Signup(userType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, http.StatusBadRequest, "malformed request body")
		}

		user, err := h.ids.Register(c.UserContext(), identity.SignupInput{
			Email:        req.Email,
			Password:     req.Password,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			MobileNumber: req.MobileNumber,
			UserType:     userType,
		})
		if err != nil {
			if errors.Is(err, identity.ErrDuplicate) {
				return respondError(c, http.StatusConflict, "account already exists")
			}
			return respondError(c, http.StatusBadRequest, err.Error())
		}

		h.notify(c, notification.KindSignup, user)

		if userType != identity.UserTypeConsumer {
			return respondOK(c, http.StatusCreated, toUserResponse(user, ""))
		}

		tok, err := h.tokens.Issue(user)
		if err != nil {
			h.logger.Error("issue token", "error", err)
			return respondError(c, http.StatusInternalServerError, "signup failed")
		}
		return respondOK(c, http.StatusCreated, toUserResponse(user, tok))
	}
}

// Me returns the profile for the bearer token's subject. The subject is set
// by the bearer-auth middleware.
func (h *Handler) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	user, err := h.ids.Profile(c.UserContext(), uid)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	return respondOK(c, http.StatusOK, toUserResponse(user, ""))
}

// Logout invalidates outstanding tokens for the caller when one can be
// identified. It always reports success: clients clear their local session
// regardless of the outcome, so there is nothing useful to fail with.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if uid, _ := c.Locals("user_id").(string); uid != "" {
		if err := h.ids.InvalidateTokens(c.UserContext(), uid); err != nil {
			h.logger.Warn("invalidate tokens", "user_id", uid, "error", err)
		}
	}
	return respondMessage(c, http.StatusOK, "logged out")
}

func (h *Handler) notify(c *fiber.Ctx, kind string, user identity.User) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Send(c.UserContext(), notification.Event{
		Kind:     kind,
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
	}); err != nil {
		h.logger.Warn("notify", "kind", kind, "error", err)
	}
}
