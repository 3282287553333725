package user

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	authHelper "datasiswa_backend/internals/features/users/auth/helper"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	repo := userRepo.NewMemoryUserRepository()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := SeedAdmin(ctx, repo, "admin", "admin123"); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}
	u, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if u.PasswordHash == "admin123" || !authHelper.CheckPasswordHash("admin123", u.PasswordHash) {
		t.Fatalf("password must be stored as bcrypt hash")
	}
}

func TestSeedAdminSkipsWhenUnset(t *testing.T) {
	repo := userRepo.NewMemoryUserRepository()
	if err := SeedAdmin(context.Background(), repo, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByUsername(context.Background(), ""); err == nil {
		t.Fatalf("no user should be created")
	}
}

func TestSeedUsersFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	data := `[{"username":"guru","password":"guru123"},{"username":"tu","password":"tu123"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	repo := userRepo.NewMemoryUserRepository()
	if err := SeedUsersFromJSON(context.Background(), repo, path); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, name := range []string{"guru", "tu"} {
		if _, err := repo.FindByUsername(context.Background(), name); err != nil {
			t.Fatalf("user %s missing: %v", name, err)
		}
	}
}
