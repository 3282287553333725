package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"datasiswa_backend/internals/constants"
	helper "datasiswa_backend/internals/helpers"
)

// Rate limiter untuk POST /login, per IP. Saat limit tercapai form login dirender ulang.
func LoginRateLimiter(max int) fiber.Handler {
	if max <= 0 {
		max = 5
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("[WARNING] limit login tercapai ip=%s", c.IP())
			return helper.Render(c, fiber.StatusTooManyRequests, "login", "Login", fiber.Map{
				"Username": c.FormValue("username"),
				"Errors":   []helper.FieldError{{Msg: constants.MsgLoginTooMany}},
				"LoggedIn": false,
			})
		},
	})
}
