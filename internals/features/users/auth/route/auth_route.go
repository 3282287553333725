package route

import (
	"github.com/gofiber/fiber/v2"

	"datasiswa_backend/internals/features/users/auth/controller"
)

// AuthRoutes: /login dan /logout (publik). loginLimiter hanya untuk POST /login.
func AuthRoutes(app *fiber.App, ctrl *controller.AuthController, loginLimiter fiber.Handler) {
	app.Get("/login", ctrl.LoginPage)
	app.Post("/login", loginLimiter, ctrl.Login)
	app.Get("/logout", ctrl.Logout)
}
