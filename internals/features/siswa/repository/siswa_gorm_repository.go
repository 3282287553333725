package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"datasiswa_backend/internals/features/siswa/model"
)

type gormSiswaRepository struct {
	db *gorm.DB
}

func NewGormSiswaRepository(db *gorm.DB) SiswaRepository {
	return &gormSiswaRepository{db: db}
}

func (r *gormSiswaRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.SiswaModel{})
}

func (r *gormSiswaRepository) FindAll(ctx context.Context) ([]model.SiswaModel, error) {
	var rows []model.SiswaModel
	if err := r.db.WithContext(ctx).Order("nama ASC").Order("nisn ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("ambil daftar siswa: %w", err)
	}
	return rows, nil
}

func (r *gormSiswaRepository) FindByNISN(ctx context.Context, nisn string) (*model.SiswaModel, error) {
	var row model.SiswaModel
	if err := r.db.WithContext(ctx).Where("nisn = ?", nisn).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cari siswa nisn=%s: %w", nisn, err)
	}
	return &row, nil
}

func (r *gormSiswaRepository) ExistsByNIK(ctx context.Context, nik string) (bool, error) {
	return r.exists(ctx, "nik = ?", nik)
}

func (r *gormSiswaRepository) ExistsByNISN(ctx context.Context, nisn string) (bool, error) {
	return r.exists(ctx, "nisn = ?", nisn)
}

func (r *gormSiswaRepository) exists(ctx context.Context, where string, arg string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.SiswaModel{}).Where(where, arg).Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("cek siswa (%s): %w", where, err)
	}
	return n > 0, nil
}

func (r *gormSiswaRepository) Create(ctx context.Context, siswa *model.SiswaModel) error {
	if err := r.db.WithContext(ctx).Create(siswa).Error; err != nil {
		if dup := duplicateFromPg(err); dup != nil {
			return dup
		}
		return fmt.Errorf("simpan siswa: %w", err)
	}
	return nil
}

func (r *gormSiswaRepository) UpdateEnrollment(ctx context.Context, nisn string, upd model.SiswaEnrollmentUpdate) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SiswaModel{}).
		Where("nisn = ?", nisn).
		Updates(map[string]any{
			"tingkat":   upd.Tingkat,
			"rombel":    upd.Rombel,
			"tgl_masuk": upd.TglMasuk,
			"terdaftar": upd.Terdaftar,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update siswa nisn=%s: %w", nisn, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormSiswaRepository) DeleteByNISN(ctx context.Context, nisn string) (int64, error) {
	res := r.db.WithContext(ctx).Where("nisn = ?", nisn).Delete(&model.SiswaModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("hapus siswa nisn=%s: %w", nisn, res.Error)
	}
	return res.RowsAffected, nil
}

// duplicateFromPg menerjemahkan unique_violation (23505) menjadi *DuplicateError.
func duplicateFromPg(err error) *DuplicateError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return nil
		}
		if f := fieldFromIndex(pgErr.ConstraintName); f != "" {
			return &DuplicateError{Field: f}
		}
		return duplicateFromText(pgErr.Detail + " " + pgErr.Message)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateFromText(err.Error())
	}
	return nil
}

func duplicateFromText(msg string) *DuplicateError {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, IndexNISN) || strings.Contains(msg, "(nisn)"):
		return &DuplicateError{Field: FieldNISN}
	case strings.Contains(msg, IndexNIK) || strings.Contains(msg, "(nik)"):
		return &DuplicateError{Field: FieldNIK}
	}
	return &DuplicateError{}
}
