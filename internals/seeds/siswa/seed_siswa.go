package siswa

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"datasiswa_backend/internals/features/siswa/dto"
	"datasiswa_backend/internals/features/siswa/service"
	helper "datasiswa_backend/internals/helpers"
)

// SeedSiswaFromJSON memasukkan contoh data siswa lewat aturan yang sama dengan form.
// Baris yang ditolak (format, batas tanggal, nik/nisn sudah ada) dilewati.
func SeedSiswaFromJSON(ctx context.Context, svc *service.SiswaService, filePath string) (int, error) {
	log.Println("📥 Membaca file siswa:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca %s: %w", filePath, err)
	}
	var inputs []struct {
		NIK       string `json:"nik"`
		NISN      string `json:"nisn"`
		Nama      string `json:"nama"`
		Tingkat   string `json:"tingkat"`
		Rombel    string `json:"rombel"`
		TglMasuk  string `json:"tgl_masuk"`
		Terdaftar string `json:"terdaftar"`
	}
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	inserted := 0
	for _, in := range inputs {
		form := dto.SiswaForm(in)
		form.Normalize()
		errs, err := svc.Create(ctx, form)
		if err != nil {
			return inserted, err
		}
		if len(errs) > 0 {
			log.Printf("ℹ️ Siswa nisn=%s dilewati: %s", form.NISN, joinMsgs(errs))
			continue
		}
		inserted++
	}
	log.Printf("✅ Seed siswa: %d data baru", inserted)
	return inserted, nil
}

func joinMsgs(errs []helper.FieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Field+": "+e.Msg)
	}
	return strings.Join(msgs, "; ")
}
