package service

import (
	"context"
	"errors"
	"sync"

	authHelper "datasiswa_backend/internals/features/users/auth/helper"
	"datasiswa_backend/internals/features/users/user/model"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
)

// ErrInvalidCredentials tidak membedakan username tidak ada dengan password salah.
var ErrInvalidCredentials = errors.New("username atau password salah")

var (
	dummyOnce sync.Once
	dummyHash string
)

// hash pembanding saat username tidak ditemukan, supaya waktu respon sama
func getDummyHash() string {
	dummyOnce.Do(func() {
		dummyHash, _ = authHelper.HashPassword("datasiswa-dummy-password")
	})
	return dummyHash
}

type AuthService struct {
	Users userRepo.UserRepository
}

func NewAuthService(users userRepo.UserRepository) *AuthService {
	return &AuthService{Users: users}
}

// Authenticate mengembalikan ErrInvalidCredentials atau error store apa adanya.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.UserModel, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, userRepo.ErrNotFound) {
		authHelper.CheckPasswordHash(password, getDummyHash())
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !authHelper.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
