// file: internals/features/siswa/model/siswa_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiswaModel satu baris di tabel students.
// NIK, NISN, dan Nama tidak berubah setelah dibuat.
type SiswaModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NIK       string    `gorm:"column:nik;size:16;not null;uniqueIndex:uq_siswa_nik" json:"nik"`
	NISN      string    `gorm:"column:nisn;size:10;not null;uniqueIndex:uq_siswa_nisn" json:"nisn"`
	Nama      string    `gorm:"column:nama;size:150" json:"nama"`
	Tingkat   string    `gorm:"column:tingkat;size:20" json:"tingkat"`
	Rombel    string    `gorm:"column:rombel;size:50" json:"rombel"`
	TglMasuk  time.Time `gorm:"column:tgl_masuk;type:date" json:"tgl_masuk"`
	Terdaftar string    `gorm:"column:terdaftar;size:50" json:"terdaftar"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SiswaModel) TableName() string {
	return "students"
}

func (m *SiswaModel) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

func (m *SiswaModel) BeforeCreate(tx *gorm.DB) error {
	m.EnsureID()
	return nil
}

// SiswaEnrollmentUpdate: hanya field ini yang boleh diubah lewat form edit.
type SiswaEnrollmentUpdate struct {
	Tingkat   string
	Rombel    string
	TglMasuk  time.Time
	Terdaftar string
}
