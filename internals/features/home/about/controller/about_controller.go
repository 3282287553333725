package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "datasiswa_backend/internals/helpers"
)

// GET /about (publik)
func About(c *fiber.Ctx) error {
	return helper.Render(c, fiber.StatusOK, "about", "About", nil)
}
