package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users. Akun admin dibuat lewat seeder.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName     string    `gorm:"column:username;size:50;not null;uniqueIndex:uq_users_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) EnsureID() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	u.EnsureID()
	return nil
}
