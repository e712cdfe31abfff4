package http

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/auth"
)

// AuthHandler serves registration, login and the current-user endpoint
type AuthHandler struct {
	Auth *auth.Service
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.Auth.Register(c.Context(), auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}

	slog.Info("user registered", "user_id", result.User.ID)

	return c.Status(http.StatusCreated).JSON(authResponse{
		Token: result.Token,
		User:  newUserResponse(result.User),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.Auth.Login(c.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(authResponse{
		Token: result.Token,
		User:  newUserResponse(result.User),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.Auth.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newUserResponse(user))
}
