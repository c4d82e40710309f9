package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/api/dto"
	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/service"
)

// AuthHandler exposes the login/registration flow.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SubmitEmail handles POST /auth/email.
func (h *AuthHandler) SubmitEmail(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	step, err := h.auth.SubmitEmail(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StepResponse{Step: string(step)}})
}

// SimulateValidation handles POST /auth/validate, the developer shortcut for
// the confirmation-link click.
func (h *AuthHandler) SimulateValidation(c *fiber.Ctx) error {
	step, err := h.auth.SimulateValidation(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StepResponse{Step: string(step)}})
}

// CreatePassword handles POST /auth/password.
func (h *AuthHandler) CreatePassword(c *fiber.Ctx) error {
	var req dto.CreatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	step, err := h.auth.SubmitNewPassword(c.Context(), req.Password, req.Confirm)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StepResponse{Step: string(step)}})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.PasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.auth.SubmitPassword(c.Context(), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sess})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	member, step, err := h.auth.SubmitRegistration(c.Context(), service.RegistrationInput{
		Name:      req.Name,
		Email:     req.Email,
		CPF:       req.CPF,
		BirthDate: req.BirthDate,
		CardType:  domain.CardType(req.CardType),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"member": fiber.Map{
				"id":    member.ID,
				"name":  member.Name,
				"email": member.Email,
			},
			"step": string(step),
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.Context())
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.auth.Session()})
}
