package helper

import (
	"github.com/gofiber/fiber/v2"
)

// ✅ Error Response JSON, untuk klien yang minta application/json
func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// wantsJSON: tanpa header Accept dianggap browser (HTML)
func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
