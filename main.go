package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datasiswa_backend/internals/configs"
	database "datasiswa_backend/internals/databases"
	helper "datasiswa_backend/internals/helpers"
	routes "datasiswa_backend/internals/route"
	"datasiswa_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	// 🔌 store sesuai STORE_DRIVER + migrasi/index
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := database.Open(bootCtx, cfg)
	if err != nil {
		log.Fatalf("❌ Gagal konek store: %v", err)
	}
	if err := backend.Migrate(bootCtx); err != nil {
		log.Fatalf("❌ Gagal migrasi: %v", err)
	}

	if cfg.RunSeeds {
		opts := seeds.Options{
			AdminUsername: cfg.AdminUsername,
			AdminPassword: cfg.AdminPassword,
			UsersFile:     cfg.SeedUsersFile,
			Cutoff:        cfg.EnrollmentCutoff,
		}
		if cfg.SeedSampleSiswa {
			opts.SiswaFile = seeds.SiswaSeedFile
		}
		if err := seeds.RunAllSeeds(bootCtx, backend.Users, backend.Siswa, opts); err != nil {
			log.Fatalf("❌ Gagal seed: %v", err)
		}
	}
	cancelBoot()

	app := routes.NewApp(routes.Deps{
		Config: cfg,
		Sessions: helper.NewSessionStore(helper.SessionOptions{
			TTL:    cfg.SessionTTL,
			Secure: cfg.CookieSecure,
		}),
		Users: backend.Users,
		Siswa: backend.Siswa,
		Ping:  backend.Ping,
	})

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s (store=%s)", cfg.Port, backend.Driver)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup koneksi store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("shutdown err: %v", err)
	}
	if err := backend.Close(ctx); err != nil {
		log.Printf("close store err: %v", err)
	}
}
