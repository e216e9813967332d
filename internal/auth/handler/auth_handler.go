package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/techstud-dev/schedule-university/config"
	"github.com/techstud-dev/schedule-university/internal/auth/dto"
	"github.com/techstud-dev/schedule-university/internal/auth/service"
	autherror "github.com/techstud-dev/schedule-university/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
	cfg         *config.Config
}

func NewAuthHandler(userService *service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: userService, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	log.Printf("incoming login request, id: %s", requestID(c))

	pair, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(pair)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	log.Printf("incoming register request, id: %s", requestID(c))

	if err := h.userService.StartRegistration(c.Context(), input); err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Sent confirmation code."})
}

func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	var input dto.ConfirmInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	log.Printf("incoming confirm request, id: %s", requestID(c))

	pair, err := h.userService.CompleteRegistration(c.Context(), input.Code)
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(pair)
}

func (h *AuthHandler) Resend(c *fiber.Ctx) error {
	var input dto.ResendInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	log.Printf("incoming resend request, id: %s", requestID(c))

	if err := h.userService.ResendConfirmation(c.Context(), input.Email); err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Sent confirmation code."})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	log.Printf("incoming refresh token request, id: %s", requestID(c))

	accessToken, err := h.userService.Refresh(c.Context(), input.RefreshToken)
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.setAccessCookie(c, accessToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"access_token": accessToken})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	log.Printf("incoming logout request, id: %s", requestID(c))

	if err := h.userService.Logout(c.Context(), input.RefreshToken); err != nil {
		return h.errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// errorResponse maps each domain error to its stable status code. Retry-carrying errors
// additionally set a Retry-After header.
func (h *AuthHandler) errorResponse(c *fiber.Ctx, err error) error {
	var tooSoon *autherror.TooSoonError

	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, autherror.ErrUserNotFound), errors.Is(err, autherror.ErrPendingNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, autherror.ErrBadCredentials), errors.Is(err, autherror.ErrInvalidToken):
		status = fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrUserExists):
		status = fiber.StatusConflict
	case errors.Is(err, autherror.ErrInvalidCode):
		status = fiber.StatusBadRequest
	case errors.As(err, &tooSoon):
		status = fiber.StatusTooManyRequests
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(tooSoon.RetryAfter.Seconds())+1))
	default:
		log.Printf("request %s failed: %v", requestID(c), err)
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
