package repository

import (
	"context"
	"errors"

	"datasiswa_backend/internals/features/users/user/model"
)

var (
	ErrNotFound      = errors.New("user tidak ditemukan")
	ErrUsernameTaken = errors.New("username sudah dipakai")
)

// UserRepository akses ke koleksi/tabel users.
type UserRepository interface {
	Migrate(ctx context.Context) error
	FindByUsername(ctx context.Context, username string) (*model.UserModel, error)
	Create(ctx context.Context, user *model.UserModel) error
}
