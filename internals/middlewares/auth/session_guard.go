// internals/middlewares/auth/session_guard.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"datasiswa_backend/internals/constants"
	helper "datasiswa_backend/internals/helpers"
)

// RequireLogin menolak request tanpa identitas di sesi: flash + redirect /login.
// Sesi yang valid disimpan ulang sehingga masa berlakunya bergeser (sliding).
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return helper.RenderStoreError(c, "session guard", err)
		}

		id, ok := helper.CurrentIdentity(sess)
		if !ok {
			log.Printf("[INFO] akses tanpa login: %s %s", c.Method(), c.OriginalURL())
			helper.SetFlash(sess, constants.MsgMustLogin)
			if err := sess.Save(); err != nil {
				return helper.RenderStoreError(c, "session guard", err)
			}
			return c.Redirect("/login", fiber.StatusFound)
		}

		if err := sess.Save(); err != nil {
			return helper.RenderStoreError(c, "session guard", err)
		}
		c.Locals(helper.LocUserID, id.UserID)
		c.Locals(helper.LocUsername, id.Username)
		return c.Next()
	}
}
