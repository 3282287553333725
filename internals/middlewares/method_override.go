package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverrideField nama field form untuk PUT/DELETE dari <form method="post">
const MethodOverrideField = "_method"

var overridable = map[string]struct{}{
	fiber.MethodPut:    {},
	fiber.MethodPatch:  {},
	fiber.MethodDelete: {},
}

// MethodOverride harus dipasang sebelum route mana pun.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		m := c.Get("X-HTTP-Method-Override")
		if m == "" {
			m = c.FormValue(MethodOverrideField)
		}
		m = strings.ToUpper(strings.TrimSpace(m))
		if _, ok := overridable[m]; ok {
			c.Method(m)
		}
		return c.Next()
	}
}
