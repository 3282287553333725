package details

import (
	"github.com/gofiber/fiber/v2"

	aboutRoute "datasiswa_backend/internals/features/home/about/route"
)

// ✅ Route publik tanpa login
func HomePublicRoutes(app *fiber.App) {
	aboutRoute.AboutRoutes(app)
}
