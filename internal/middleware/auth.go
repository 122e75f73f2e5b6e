package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/config"
	"github.com/simitmodi/Stride-sub000/internal/models"
	"github.com/simitmodi/Stride-sub000/internal/session"
	"github.com/simitmodi/Stride-sub000/internal/utils"
)

const (
	userContextKey   = "currentUser"
	markerContextKey = "sessionMarker"
)

// AuthMiddleware validates JWT tokens, loads the authenticated user and
// enforces the single-active-session rule: a token whose embedded session
// marker no longer matches the one on the user record was superseded by a
// newer sign-in and is rejected with a distinguished code.
func AuthMiddleware(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, marker, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
			}
			return err
		}

		if session.Apply(marker, user.SessionMarker) == session.ActionSignOut {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "signed-in-elsewhere",
				"error":   "you have been signed in on another device",
			})
		}

		c.Locals(userContextKey, user)
		c.Locals(markerContextKey, marker)
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from context.
func GetCurrentUser(c *fiber.Ctx) (models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return models.User{}, false
	}

	if user, ok := value.(models.User); ok {
		return user, true
	}

	return models.User{}, false
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	user, ok := GetCurrentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

// GetSessionMarker extracts the token-embedded session marker from context.
func GetSessionMarker(c *fiber.Ctx) string {
	if value, ok := c.Locals(markerContextKey).(string); ok {
		return value
	}
	return ""
}

// RequireRole rejects requests from users outside the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}
