package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"datasiswa_backend/internals/constants"
	"datasiswa_backend/internals/features/users/auth/service"
	helper "datasiswa_backend/internals/helpers"
)

type AuthController struct {
	Auth     *service.AuthService
	Sessions *session.Store
}

func NewAuthController(auth *service.AuthService, store *session.Store) *AuthController {
	return &AuthController{Auth: auth, Sessions: store}
}

func RenderLogin(c *fiber.Ctx, status int, username string, errs []helper.FieldError, msg string) error {
	return helper.Render(c, status, "login", "Login", fiber.Map{
		"Username": username,
		"Errors":   errs,
		"Msg":      msg,
		"LoggedIn": false,
	})
}

func loginError(msg string) []helper.FieldError {
	return []helper.FieldError{{Msg: msg}}
}

// GET /login
func (ac *AuthController) LoginPage(c *fiber.Ctx) error {
	sess, err := ac.Sessions.Get(c)
	if err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	if _, ok := helper.CurrentIdentity(sess); ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	msg := helper.PopFlash(sess)
	if msg != "" {
		if err := sess.Save(); err != nil {
			return helper.RenderStoreError(c, "session", err)
		}
	}
	return RenderLogin(c, fiber.StatusOK, "", nil, msg)
}

// POST /login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	var errs []helper.FieldError
	if username == "" {
		errs = append(errs, helper.FieldError{Field: "username", Msg: constants.MsgUsernameEmpty})
	}
	if password == "" {
		errs = append(errs, helper.FieldError{Field: "password", Msg: constants.MsgPasswordEmpty})
	}
	if len(errs) > 0 {
		return RenderLogin(c, fiber.StatusUnprocessableEntity, username, errs, "")
	}

	user, err := ac.Auth.Authenticate(c.UserContext(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		log.Printf("[WARNING] login gagal username=%q ip=%s", username, c.IP())
		return RenderLogin(c, fiber.StatusUnauthorized, username, loginError(constants.MsgLoginInvalid), "")
	}
	if err != nil {
		log.Printf("[ERROR] login username=%q: %v", username, err)
		return RenderLogin(c, fiber.StatusInternalServerError, username, loginError(constants.MsgServerError), "")
	}

	sess, err := ac.Sessions.Get(c)
	if err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	if err := helper.SignIn(sess, helper.Identity{UserID: user.ID.String(), Username: user.UserName}); err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	helper.SetFlash(sess, constants.MsgLoginSuccess)
	if err := sess.Save(); err != nil {
		return helper.RenderStoreError(c, "session", err)
	}

	log.Printf("✅ login berhasil username=%s", user.UserName)
	return c.Redirect("/", fiber.StatusFound)
}

// GET /logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	sess, err := ac.Sessions.Get(c)
	if err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	if err := sess.Destroy(); err != nil {
		return helper.RenderStoreError(c, "session", err)
	}
	return c.Redirect("/login", fiber.StatusFound)
}
