package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/techstud-dev/schedule-university/config"
	"github.com/techstud-dev/schedule-university/internal/auth/domain"
	"github.com/techstud-dev/schedule-university/internal/auth/dto"
	"github.com/techstud-dev/schedule-university/internal/auth/handler"
	"github.com/techstud-dev/schedule-university/internal/auth/service"
	autherror "github.com/techstud-dev/schedule-university/internal/errors"
	"github.com/techstud-dev/schedule-university/internal/mocks"
)

func handlerTestConfig() *config.Config {
	return &config.Config{
		AccessExpiryMin:  15,
		RefreshExpiryMin: 10080,
	}
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	mockConfirmer := mocks.NewMockConfirmer(ctrl)

	userService := service.NewUserService(mockRepo, mockTokenService, mockConfirmer)
	authHandler := handler.NewAuthHandler(userService, handlerTestConfig())

	app := fiber.New()
	app.Post("/login", authHandler.Login)

	t.Run("success sets auth cookies", func(t *testing.T) {
		password := "password123"
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)

		user := &domain.User{ID: 7, Username: "johndoe", PasswordHash: string(hashed)}

		// Mock expectations
		mockRepo.EXPECT().FindByUsername(gomock.Any(), "johndoe").Return(user, nil)
		mockTokenService.EXPECT().IssueAccessToken(user).Return("access-token", nil)
		mockTokenService.EXPECT().IssueRefreshToken(user).Return("refresh-token", nil)
		mockTokenService.EXPECT().RefreshExpiry().Return(7 * 24 * time.Hour)
		mockRepo.EXPECT().UpdateRefreshToken(gomock.Any(), user.ID, gomock.Any()).Return(nil)

		req := jsonRequest("POST", "/login", dto.LoginInput{
			IdentificationField: "johndoe",
			Password:            password,
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "access-token", cookieValue(resp, "access_token"))
		assert.Equal(t, "refresh-token", cookieValue(resp, "refresh_token"))

		var pair dto.TokenResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
		assert.Equal(t, "access-token", pair.AccessToken)
		assert.Equal(t, "refresh-token", pair.RefreshToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		// Mock expectations
		mockRepo.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, nil)
		mockRepo.EXPECT().FindByEmail(gomock.Any(), "ghost").Return(nil, nil)
		mockRepo.EXPECT().FindByPhoneNumber(gomock.Any(), "ghost").Return(nil, nil)

		req := jsonRequest("POST", "/login", dto.LoginInput{
			IdentificationField: "ghost",
			Password:            "whatever",
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
		require.NoError(t, err)
		user := &domain.User{ID: 7, Username: "johndoe", PasswordHash: string(hashed)}

		// Mock expectations
		mockRepo.EXPECT().FindByUsername(gomock.Any(), "johndoe").Return(user, nil)

		req := jsonRequest("POST", "/login", dto.LoginInput{
			IdentificationField: "johndoe",
			Password:            "wrong",
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad request - invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte("{invalid-json")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("internal error is masked", func(t *testing.T) {
		// Mock expectations
		mockRepo.EXPECT().FindByUsername(gomock.Any(), "johndoe").
			Return(nil, errors.New("connection refused"))

		req := jsonRequest("POST", "/login", dto.LoginInput{
			IdentificationField: "johndoe",
			Password:            "whatever",
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "internal server error", body["error"])
	})
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	mockConfirmer := mocks.NewMockConfirmer(ctrl)

	userService := service.NewUserService(mockRepo, mockTokenService, mockConfirmer)
	authHandler := handler.NewAuthHandler(userService, handlerTestConfig())

	app := fiber.New()
	app.Post("/register", authHandler.Register)

	input := dto.RegisterInput{
		Username:    "johndoe",
		Email:       "john@example.com",
		PhoneNumber: "+10000000001",
		Password:    "password123",
	}

	t.Run("success", func(t *testing.T) {
		// Mock expectations
		mockRepo.EXPECT().ExistsByUniqueFields(gomock.Any(), input.Username, input.Email, input.PhoneNumber).
			Return(false, nil)
		mockConfirmer.EXPECT().Initiate(gomock.Any(), input).Return("123456", nil)

		resp, _ := app.Test(jsonRequest("POST", "/register", input))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Sent confirmation code.", body["message"])
	})

	t.Run("identity already taken", func(t *testing.T) {
		// Mock expectations
		mockRepo.EXPECT().ExistsByUniqueFields(gomock.Any(), input.Username, input.Email, input.PhoneNumber).
			Return(true, nil)

		resp, _ := app.Test(jsonRequest("POST", "/register", input))
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	mockConfirmer := mocks.NewMockConfirmer(ctrl)

	userService := service.NewUserService(mockRepo, mockTokenService, mockConfirmer)
	authHandler := handler.NewAuthHandler(userService, handlerTestConfig())

	app := fiber.New()
	app.Post("/confirm", authHandler.Confirm)

	t.Run("success sets auth cookies", func(t *testing.T) {
		pending := &domain.PendingRegistration{ID: 42, Username: "johndoe"}

		// Mock expectations
		mockConfirmer.EXPECT().Validate(gomock.Any(), "123456").Return(pending, nil)
		mockRepo.EXPECT().ExistsByUniqueFields(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockTokenService.EXPECT().IssueAccessToken(gomock.Any()).Return("access-token", nil)
		mockTokenService.EXPECT().IssueRefreshToken(gomock.Any()).Return("refresh-token", nil)
		mockTokenService.EXPECT().RefreshExpiry().Return(7 * 24 * time.Hour)
		mockRepo.EXPECT().UpdateRefreshToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockConfirmer.EXPECT().Consume(gomock.Any(), pending.ID).Return(nil)

		resp, _ := app.Test(jsonRequest("POST", "/confirm", dto.ConfirmInput{Code: "123456"}))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "access-token", cookieValue(resp, "access_token"))
		assert.Equal(t, "refresh-token", cookieValue(resp, "refresh_token"))
	})

	t.Run("invalid code", func(t *testing.T) {
		// Mock expectations
		mockConfirmer.EXPECT().Validate(gomock.Any(), "000000").Return(nil, autherror.ErrInvalidCode)

		resp, _ := app.Test(jsonRequest("POST", "/confirm", dto.ConfirmInput{Code: "000000"}))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestResend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	mockConfirmer := mocks.NewMockConfirmer(ctrl)

	userService := service.NewUserService(mockRepo, mockTokenService, mockConfirmer)
	authHandler := handler.NewAuthHandler(userService, handlerTestConfig())

	app := fiber.New()
	app.Post("/resend", authHandler.Resend)

	t.Run("success", func(t *testing.T) {
		// Mock expectations
		mockConfirmer.EXPECT().Resend(gomock.Any(), "john@example.com").Return(nil)

		resp, _ := app.Test(jsonRequest("POST", "/resend", dto.ResendInput{Email: "john@example.com"}))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("throttled resend carries retry-after", func(t *testing.T) {
		// Mock expectations
		mockConfirmer.EXPECT().Resend(gomock.Any(), "john@example.com").
			Return(&autherror.TooSoonError{RetryAfter: 90 * time.Second})

		resp, _ := app.Test(jsonRequest("POST", "/resend", dto.ResendInput{Email: "john@example.com"}))
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "91", resp.Header.Get(fiber.HeaderRetryAfter))
	})

	t.Run("no pending registration", func(t *testing.T) {
		// Mock expectations
		mockConfirmer.EXPECT().Resend(gomock.Any(), "ghost@example.com").
			Return(autherror.ErrPendingNotFound)

		resp, _ := app.Test(jsonRequest("POST", "/resend", dto.ResendInput{Email: "ghost@example.com"}))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	mockConfirmer := mocks.NewMockConfirmer(ctrl)

	userService := service.NewUserService(mockRepo, mockTokenService, mockConfirmer)
	authHandler := handler.NewAuthHandler(userService, handlerTestConfig())

	app := fiber.New()
	app.Post("/refresh-token", authHandler.Refresh)

	t.Run("success sets access cookie only", func(t *testing.T) {
		user := &domain.User{ID: 7, Username: "johndoe"}
		claims := &service.Claims{
			Type:             service.TokenTypeRefresh,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "johndoe"},
		}

		// Mock expectations
		mockTokenService.EXPECT().Verify("refresh-token").Return(claims, nil)
		mockRepo.EXPECT().FindByUsername(gomock.Any(), "johndoe").Return(user, nil)
		mockTokenService.EXPECT().IssueAccessToken(user).Return("new-access-token", nil)

		resp, _ := app.Test(jsonRequest("POST", "/refresh-token", dto.RefreshInput{RefreshToken: "refresh-token"}))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "new-access-token", cookieValue(resp, "access_token"))
		assert.Empty(t, cookieValue(resp, "refresh_token"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "new-access-token", body["access_token"])
	})

	t.Run("invalid token", func(t *testing.T) {
		// Mock expectations
		mockTokenService.EXPECT().Verify("garbage").Return(nil, autherror.ErrInvalidToken)

		resp, _ := app.Test(jsonRequest("POST", "/refresh-token", dto.RefreshInput{RefreshToken: "garbage"}))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty token", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest("POST", "/refresh-token", dto.RefreshInput{}))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokenService := mocks.NewMockTokenGenerator(ctrl)
	mockConfirmer := mocks.NewMockConfirmer(ctrl)

	userService := service.NewUserService(mockRepo, mockTokenService, mockConfirmer)
	authHandler := handler.NewAuthHandler(userService, handlerTestConfig())

	app := fiber.New()
	app.Delete("/logout", authHandler.Logout)

	t.Run("success", func(t *testing.T) {
		// Mock expectations
		mockRepo.EXPECT().ClearRefreshToken(gomock.Any(), "refresh-token").Return(int64(1), nil)

		resp, _ := app.Test(jsonRequest("DELETE", "/logout", dto.LogoutInput{RefreshToken: "refresh-token"}))
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		// Mock expectations
		mockRepo.EXPECT().ClearRefreshToken(gomock.Any(), "stale-token").Return(int64(0), nil)

		resp, _ := app.Test(jsonRequest("DELETE", "/logout", dto.LogoutInput{RefreshToken: "stale-token"}))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
