package repository

import (
	"context"
	"sync"
	"time"

	"datasiswa_backend/internals/features/users/user/model"
)

// MemoryUserRepository menyimpan user di map, dipakai untuk STORE_DRIVER=memory dan test.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.UserModel

	// Err jika diisi dikembalikan oleh semua operasi (simulasi store mati).
	Err error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]model.UserModel{}}
}

func (r *MemoryUserRepository) Migrate(ctx context.Context) error {
	return r.Err
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.UserModel, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.UserModel) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserName]; ok {
		return ErrUsernameTaken
	}
	user.EnsureID()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.UserName] = *user
	return nil
}
