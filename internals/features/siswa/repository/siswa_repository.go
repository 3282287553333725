// file: internals/features/siswa/repository/siswa_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"datasiswa_backend/internals/features/siswa/model"
)

// Nama field yang dijaga unique index
const (
	FieldNIK  = "nik"
	FieldNISN = "nisn"
)

// Nama index unik, sama untuk postgres & mongo
const (
	IndexNIK  = "uq_siswa_nik"
	IndexNISN = "uq_siswa_nisn"
)

var (
	ErrNotFound  = errors.New("siswa tidak ditemukan")
	ErrDuplicate = errors.New("data siswa duplikat")
)

// DuplicateError dikembalikan Create saat store menolak karena unique index.
// errors.Is(err, ErrDuplicate) bernilai true.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s sudah ada", ErrDuplicate, e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

type SiswaRepository interface {
	Migrate(ctx context.Context) error

	// FindAll diurutkan berdasarkan nama
	FindAll(ctx context.Context) ([]model.SiswaModel, error)
	FindByNISN(ctx context.Context, nisn string) (*model.SiswaModel, error)
	ExistsByNIK(ctx context.Context, nik string) (bool, error)
	ExistsByNISN(ctx context.Context, nisn string) (bool, error)

	Create(ctx context.Context, siswa *model.SiswaModel) error
	// UpdateEnrollment mengembalikan jumlah baris yang cocok dengan nisn
	UpdateEnrollment(ctx context.Context, nisn string, upd model.SiswaEnrollmentUpdate) (int64, error)
	DeleteByNISN(ctx context.Context, nisn string) (int64, error)
}

func fieldFromIndex(name string) string {
	switch name {
	case IndexNIK:
		return FieldNIK
	case IndexNISN:
		return FieldNISN
	}
	return ""
}
