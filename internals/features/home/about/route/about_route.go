package route

import (
	"github.com/gofiber/fiber/v2"

	"datasiswa_backend/internals/features/home/about/controller"
)

func AboutRoutes(app *fiber.App) {
	app.Get("/about", controller.About)
}
