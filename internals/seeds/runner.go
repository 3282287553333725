package seeds

import (
	"context"
	"log"
	"os"
	"time"

	siswaRepo "datasiswa_backend/internals/features/siswa/repository"
	siswaService "datasiswa_backend/internals/features/siswa/service"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
	siswa "datasiswa_backend/internals/seeds/siswa"
	users "datasiswa_backend/internals/seeds/users/auth"
)

const SiswaSeedFile = "internals/seeds/siswa/data_siswa.json"

type Options struct {
	AdminUsername string
	AdminPassword string
	// UsersFile/SiswaFile kosong = dilewati
	UsersFile string
	SiswaFile string
	// Cutoff batas tgl_masuk, sama dengan form
	Cutoff time.Time
}

func RunAllSeeds(ctx context.Context, u userRepo.UserRepository, s siswaRepo.SiswaRepository, opts Options) error {
	//* User
	if err := users.SeedAdmin(ctx, u, opts.AdminUsername, opts.AdminPassword); err != nil {
		return err
	}
	if fileExists(opts.UsersFile, "user") {
		if err := users.SeedUsersFromJSON(ctx, u, opts.UsersFile); err != nil {
			return err
		}
	}

	//* Siswa
	if !fileExists(opts.SiswaFile, "siswa") {
		return nil
	}
	_, err := siswa.SeedSiswaFromJSON(ctx, siswaService.NewSiswaService(s, opts.Cutoff), opts.SiswaFile)
	return err
}

func fileExists(path, kind string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("ℹ️ File seed %s %s tidak ada, dilewati.", kind, path)
		return false
	}
	return true
}
