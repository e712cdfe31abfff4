package http

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/auth"
)

const userIDKey = "user_id"

// requireAuth verifies the Bearer token and stores the authenticated
// user's ID in the request locals.
func requireAuth(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "authorization header must be a bearer token"})
		}

		userID, err := authSvc.VerifyToken(c.Context(), parts[1])
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// currentUserID reads the authenticated user set by requireAuth
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDKey).(uuid.UUID)
	return id
}
