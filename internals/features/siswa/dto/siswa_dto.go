// file: internals/features/siswa/dto/siswa_dto.go
package dto

import (
	"strings"
	"time"

	"datasiswa_backend/internals/features/siswa/model"
)

// Format tanggal dari <input type="date">
const DateLayout = time.DateOnly

/* =========================================================
   FORM (create & edit)
   ========================================================= */

// SiswaForm menampung nilai form apa adanya supaya bisa dirender ulang saat gagal validasi.
type SiswaForm struct {
	NIK       string `form:"nik"`
	NISN      string `form:"nisn"`
	Nama      string `form:"nama"`
	Tingkat   string `form:"tingkat"`
	Rombel    string `form:"rombel"`
	TglMasuk  string `form:"tgl_masuk"`
	Terdaftar string `form:"terdaftar"`
}

func (f *SiswaForm) Normalize() {
	f.NIK = strings.TrimSpace(f.NIK)
	f.NISN = strings.TrimSpace(f.NISN)
	f.Nama = strings.TrimSpace(f.Nama)
	f.Tingkat = strings.TrimSpace(f.Tingkat)
	f.Rombel = strings.TrimSpace(f.Rombel)
	f.TglMasuk = strings.TrimSpace(f.TglMasuk)
	f.Terdaftar = strings.TrimSpace(f.Terdaftar)
}

func ParseTglMasuk(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ToModel dipanggil setelah validasi lolos, tgl sudah diparse.
func (f SiswaForm) ToModel(tgl time.Time) *model.SiswaModel {
	return &model.SiswaModel{
		NIK:       f.NIK,
		NISN:      f.NISN,
		Nama:      f.Nama,
		Tingkat:   f.Tingkat,
		Rombel:    f.Rombel,
		TglMasuk:  tgl,
		Terdaftar: f.Terdaftar,
	}
}

func (f SiswaForm) ToEnrollmentUpdate(tgl time.Time) model.SiswaEnrollmentUpdate {
	return model.SiswaEnrollmentUpdate{
		Tingkat:   f.Tingkat,
		Rombel:    f.Rombel,
		TglMasuk:  tgl,
		Terdaftar: f.Terdaftar,
	}
}

// FromModel: isi form edit dari data tersimpan
func FromModel(m *model.SiswaModel) SiswaForm {
	f := SiswaForm{
		NIK:       m.NIK,
		NISN:      m.NISN,
		Nama:      m.Nama,
		Tingkat:   m.Tingkat,
		Rombel:    m.Rombel,
		Terdaftar: m.Terdaftar,
	}
	if !m.TglMasuk.IsZero() {
		f.TglMasuk = m.TglMasuk.Format(DateLayout)
	}
	return f
}
