package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"

	authHelper "datasiswa_backend/internals/features/users/auth/helper"
	"datasiswa_backend/internals/features/users/user/model"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
)

type UserSeed struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

// SeedAdmin membuat akun admin jika belum ada. Aman dijalankan berulang.
func SeedAdmin(ctx context.Context, repo userRepo.UserRepository, username, password string) error {
	if username == "" || password == "" {
		log.Println("ℹ️ ADMIN_USERNAME/ADMIN_PASSWORD kosong, seed admin dilewati.")
		return nil
	}
	created, err := seedOne(ctx, repo, UserSeed{UserName: username, Password: password})
	if err != nil {
		return err
	}
	if created {
		log.Printf("✅ Admin '%s' dibuat.", username)
	} else {
		log.Printf("ℹ️ Admin '%s' sudah ada, dilewati.", username)
	}
	return nil
}

func SeedUsersFromJSON(ctx context.Context, repo userRepo.UserRepository, filePath string) error {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		created, err := seedOne(ctx, repo, data)
		if err != nil {
			log.Printf("❌ Gagal seed user '%s': %v", data.UserName, err)
			continue
		}
		if !created {
			log.Printf("ℹ️ User '%s' sudah ada, dilewati.", data.UserName)
		}
	}
	return nil
}

func seedOne(ctx context.Context, repo userRepo.UserRepository, data UserSeed) (bool, error) {
	_, err := repo.FindByUsername(ctx, data.UserName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, userRepo.ErrNotFound) {
		return false, err
	}

	// 🔐 Hash password sebelum disimpan
	hashed, err := authHelper.HashPassword(data.Password)
	if err != nil {
		return false, err
	}
	err = repo.Create(ctx, &model.UserModel{UserName: data.UserName, PasswordHash: hashed})
	if errors.Is(err, userRepo.ErrUsernameTaken) {
		return false, nil
	}
	return err == nil, err
}
