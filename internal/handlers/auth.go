package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/services"
	"go.uber.org/zap"
)

// AuthHandler handles account registration and login
type AuthHandler struct {
	Accounts *services.Accounts
	Logger   *zap.Logger
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

type AuthUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Plan  models.Plan `json:"plan,omitempty"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Description Create an account and return a session token. A welcome email is queued.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.Accounts.Register(c.UserContext(), services.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange email and password for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.Accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, logger(h.Logger), err, "User not found")
	}

	return c.JSON(AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Plan: user.Plan},
	})
}
