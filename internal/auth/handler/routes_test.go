package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameershaik-coder/account-service/internal/auth/handler"
	"github.com/sameershaik-coder/account-service/internal/auth/service"
	"github.com/sameershaik-coder/account-service/internal/mocks"
)

func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: guards and body parsing reject every request
	// before any collaborator is reached.
	mockRepo := mocks.NewMockUserRepository(ctrl)
	tokenService := service.NewTokenService("access-secret", "refresh-secret", 15, 10080, nil)
	userService := service.NewUserService(mockRepo, tokenService, service.MinLengthPolicy(8), nil, nil)
	authHandler := handler.NewAuthHandler(userService, tokenService, nil)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/register/"},
		{http.MethodPost, "/login/"},
		{http.MethodPost, "/logout/"},
		{http.MethodPost, "/token/refresh/"},
		{http.MethodGet, "/me/"},
		{http.MethodPatch, "/me/"},
		{http.MethodGet, "/users/"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil), -1)
			require.NoError(t, err)
			assert.NotEqual(t, fiber.StatusNotFound, resp.StatusCode)
			assert.NotEqual(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}
