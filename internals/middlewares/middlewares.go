package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"datasiswa_backend/internals/middlewares/logger"
)

type Options struct {
	CookieSecret   string
	RequestTimeout time.Duration
	AccessLog      bool
}

// SetupMiddlewares memasang middleware global. Urutan penting:
// method override paling awal, encryptcookie sebelum session dipakai handler.
func SetupMiddlewares(app *fiber.App, opts Options) {
	app.Use(MethodOverride())
	app.Use(RecoveryMiddleware())
	if opts.AccessLog {
		app.Use(logger.LoggerMiddleware())
	}
	app.Use(RequestContext(opts.RequestTimeout))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: opts.CookieSecret,
	}))
}
