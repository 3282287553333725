package route

import (
	"github.com/gofiber/fiber/v2"

	"datasiswa_backend/internals/features/siswa/controller"
)

// SiswaRoutes: semua route siswa dijaga guard (login wajib).
// Guard dipasang per prefix; /login, /logout, /about tetap publik.
func SiswaRoutes(app *fiber.App, ctrl *controller.SiswaController, guard fiber.Handler) {
	app.Get("/", guard, ctrl.Home)

	g := app.Group("/data-siswa", guard)
	g.Get("/", ctrl.List)
	g.Get("/add", ctrl.AddForm)
	g.Post("/", ctrl.Create)
	g.Get("/edit/:nisn", ctrl.EditForm)
	g.Put("/", ctrl.Update)
	g.Delete("/", ctrl.Delete)
}
