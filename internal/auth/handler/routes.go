package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Use(h.RequestLogger())

	app.Post("/register/", h.Register)
	app.Post("/login/", h.Login)
	app.Post("/logout/", h.RequireAuth(), h.Logout)
	app.Post("/token/refresh/", h.Refresh)

	app.Get("/me/", h.RequireAuth(), h.Me)
	app.Patch("/me/", h.RequireAuth(), h.UpdateMe)

	// Admin-only endpoints
	app.Get("/users/", h.RequireAuth(), h.RequireAdmin(), h.ListUsers)
}
