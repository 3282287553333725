// file: internals/route/index.go
package routes

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"datasiswa_backend/internals/configs"
	siswaRepo "datasiswa_backend/internals/features/siswa/repository"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
	routeDetails "datasiswa_backend/internals/route/details"
)

var startTime time.Time

// Deps semua yang dibutuhkan route; disusun di main (atau di test).
type Deps struct {
	Config   *configs.AppConfig
	Sessions *session.Store
	Users    userRepo.UserRepository
	Siswa    siswaRepo.SiswaRepository
	// Ping cek koneksi store untuk /health; nil = selalu sehat
	Ping func(ctx context.Context) error
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.Ping, d.Config.Environment)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, d.Users, d.Sessions, d.Config.LoginRateMax)

	log.Println("[INFO] Setting up HomePublicRoutes...")
	routeDetails.HomePublicRoutes(app)

	log.Println("[INFO] Setting up SiswaRoutes (guarded)...")
	routeDetails.SiswaRoutes(app, d.Siswa, d.Sessions, d.Config.EnrollmentCutoff)
}
