package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mbongo-pay/mbongo_pay/internal/identity"
	"github.com/mbongo-pay/mbongo_pay/internal/token"
)

// BearerAuth validates the access token and checks that its version still
// matches the account, so a logout kills tokens that have not yet expired.
// The subject lands in c.Locals("user_id").
//
// When required is false a missing or invalid token passes through without
// setting the subject; the logout endpoint uses this mode.
func BearerAuth(tokens *token.Service, repo identity.Repository, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			if !required {
				return c.Next()
			}
			return unauthorized(c, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			if !required {
				return c.Next()
			}
			return unauthorized(c, "invalid token")
		}

		user, err := repo.FindByID(c.UserContext(), claims.Subject)
		if err != nil || user.TokenVersion != claims.TokenVersion {
			if !required {
				return c.Next()
			}
			return unauthorized(c, "token invalidated")
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("user_type", claims.UserType)
		return c.Next()
	}
}

// unauthorized renders the envelope shape clients expect even on auth failures.
func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
