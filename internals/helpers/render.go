package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"datasiswa_backend/internals/constants"
)

// MainLayout dipakai semua halaman
const MainLayout = "layouts/main-layout"

// Render menulis halaman dengan layout utama.
func Render(c *fiber.Ctx, status int, page, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	if _, ok := data["LoggedIn"]; !ok {
		data["LoggedIn"] = c.Locals(LocUserID) != nil
	}
	return c.Status(status).Render(page, data, MainLayout)
}

// RenderStoreError: detail error hanya ke log, user melihat pesan umum.
func RenderStoreError(c *fiber.Ctx, where string, err error) error {
	log.Printf("[ERROR] %s %s (%s): %v", c.Method(), c.Path(), where, err)
	return Render(c, fiber.StatusInternalServerError, "error", "Kesalahan", fiber.Map{
		"Message": constants.MsgServerError,
	})
}

func RenderNotFound(c *fiber.Ctx, msg string) error {
	return Render(c, fiber.StatusNotFound, "not-found", "Tidak Ditemukan", fiber.Map{
		"Message": msg,
	})
}

// ErrorHandler untuk fiber.Config: error yang lolos dari handler dirender sebagai halaman.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if wantsJSON(c) {
		msg := err.Error()
		if code >= 500 {
			log.Printf("[ERROR] %s %s (unhandled): %v", c.Method(), c.Path(), err)
			msg = constants.MsgServerError
		}
		return JsonError(c, code, msg)
	}
	switch {
	case code == fiber.StatusNotFound:
		return RenderNotFound(c, constants.MsgPageNotFound)
	case code >= 500:
		return RenderStoreError(c, "unhandled", err)
	default:
		return Render(c, code, "error", "Kesalahan", fiber.Map{
			"Message": err.Error(),
		})
	}
}
