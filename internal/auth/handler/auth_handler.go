package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sameershaik-coder/account-service/internal/auth/dto"
	"github.com/sameershaik-coder/account-service/internal/auth/service"
	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
	"github.com/sameershaik-coder/account-service/internal/logging"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	logger       *slog.Logger
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator,
	logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// renderError owns the error-to-status mapping so handlers never leak raw
// errors to clients.
func (h *AuthHandler) renderError(c *fiber.Ctx, err error) error {
	if verr, ok := apperrors.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid credentials or inactive account.",
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyInUse):
		// The store lost a registration race; same shape as the pre-check error.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"email": "A user with this email already exists."},
		})
	case errors.Is(err, apperrors.ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid token.",
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "User inactive or not found.",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"detail": "You do not have permission to perform this action.",
		})
	default:
		logging.FromContext(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error.",
		})
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input."})
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input."})
	}

	resp, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input."})
	}

	if input.Refresh == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "No refresh token provided.",
		})
	}

	user := CurrentUser(c)
	if err := h.userService.Logout(c.UserContext(), user, input.Refresh); err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"detail": "Successfully logged out."})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input."})
	}

	if input.Refresh == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"refresh": "This field is required."},
		})
	}

	pair, err := h.tokenService.Refresh(c.UserContext(), input.Refresh)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(pair)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(CurrentUser(c)))
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid input."})
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), CurrentUser(c), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(users)
}
