package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequireRecentReauth gates sensitive operations (password change, account
// deletion) behind a fresh credential re-verification. A stale or missing
// re-verification is rejected with a distinguished code so the client can
// prompt for credentials and replay the operation once.
func RequireRecentReauth(window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		if user.LastReauthAt == nil || time.Since(*user.LastReauthAt) > window {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"code":    "requires-recent-login",
				"error":   "please verify your credentials again to continue",
			})
		}

		return c.Next()
	}
}
