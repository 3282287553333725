package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	helper "datasiswa_backend/internals/helpers"
	middlewares "datasiswa_backend/internals/middlewares"
	"datasiswa_backend/internals/views"
)

// NewApp menyusun fiber.App lengkap: views, middleware global, static, route.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		// nilai form disimpan repository; jangan menunjuk ke buffer fasthttp
		Immutable:             true,
		Views:                 views.New(),
		ErrorHandler:          helper.ErrorHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	// method override harus paling awal
	middlewares.SetupMiddlewares(app, middlewares.Options{
		CookieSecret:   d.Config.CookieSecret,
		RequestTimeout: d.Config.RequestTimeout,
		AccessLog:      d.Config.AccessLog,
	})

	app.Static("/public", "./public", fiber.Static{
		Compress: true,
		MaxAge:   3600,
	})

	SetupRoutes(app, d)
	return app
}
