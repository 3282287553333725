package details

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	authController "datasiswa_backend/internals/features/users/auth/controller"
	authRoute "datasiswa_backend/internals/features/users/auth/route"
	authService "datasiswa_backend/internals/features/users/auth/service"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
	rateLimiter "datasiswa_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, users userRepo.UserRepository, store *session.Store, loginRateMax int) {
	ctrl := authController.NewAuthController(authService.NewAuthService(users), store)
	authRoute.AuthRoutes(app, ctrl, rateLimiter.LoginRateLimiter(loginRateMax))
}
