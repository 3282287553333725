package details

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	siswaController "datasiswa_backend/internals/features/siswa/controller"
	siswaRepo "datasiswa_backend/internals/features/siswa/repository"
	siswaRoute "datasiswa_backend/internals/features/siswa/route"
	siswaService "datasiswa_backend/internals/features/siswa/service"
	authMiddleware "datasiswa_backend/internals/middlewares/auth"
)

// ✅ Semua route siswa butuh login (sesi)
func SiswaRoutes(app *fiber.App, repo siswaRepo.SiswaRepository, store *session.Store, cutoff time.Time) {
	ctrl := siswaController.NewSiswaController(siswaService.NewSiswaService(repo, cutoff), store)
	siswaRoute.SiswaRoutes(app, ctrl, authMiddleware.RequireLogin(store))
}
