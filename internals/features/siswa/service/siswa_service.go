// file: internals/features/siswa/service/siswa_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"datasiswa_backend/internals/constants"
	"datasiswa_backend/internals/features/siswa/dto"
	"datasiswa_backend/internals/features/siswa/model"
	"datasiswa_backend/internals/features/siswa/repository"
	helper "datasiswa_backend/internals/helpers"
)

const FieldTglMasuk = "tgl_masuk"

var (
	nikRules = []helper.Rule{
		{Tag: "len=16", Msg: constants.MsgNIKLength},
		{Tag: "number", Msg: constants.MsgNIKNumeric},
	}
	nisnRules = []helper.Rule{
		{Tag: "len=10", Msg: constants.MsgNISNLength},
		{Tag: "number", Msg: constants.MsgNISNNumeric},
	}
)

type SiswaService struct {
	repo   repository.SiswaRepository
	cutoff time.Time
}

// NewSiswaService: cutoff adalah tanggal masuk terakhir yang masih diterima (inklusif).
func NewSiswaService(repo repository.SiswaRepository, cutoff time.Time) *SiswaService {
	return &SiswaService{repo: repo, cutoff: cutoff}
}

func (s *SiswaService) List(ctx context.Context) ([]model.SiswaModel, error) {
	return s.repo.FindAll(ctx)
}

func (s *SiswaService) Get(ctx context.Context, nisn string) (*model.SiswaModel, error) {
	return s.repo.FindByNISN(ctx, nisn)
}

/* =========================================================
   CREATE
   ========================================================= */

// ValidateCreate menjalankan semua rule create; error dikembalikan hanya jika store gagal.
func (s *SiswaService) ValidateCreate(ctx context.Context, f dto.SiswaForm) ([]helper.FieldError, time.Time, error) {
	var errs []helper.FieldError

	nikErrs := helper.CheckField(repository.FieldNIK, f.NIK, nikRules...)
	errs = append(errs, nikErrs...)
	// cek unik hanya kalau formatnya sudah benar
	if len(nikErrs) == 0 {
		taken, err := s.repo.ExistsByNIK(ctx, f.NIK)
		if err != nil {
			return nil, time.Time{}, err
		}
		if taken {
			errs = append(errs, helper.FieldError{Field: repository.FieldNIK, Msg: constants.MsgNIKTaken})
		}
	}

	nisnErrs := helper.CheckField(repository.FieldNISN, f.NISN, nisnRules...)
	errs = append(errs, nisnErrs...)
	if len(nisnErrs) == 0 {
		taken, err := s.repo.ExistsByNISN(ctx, f.NISN)
		if err != nil {
			return nil, time.Time{}, err
		}
		if taken {
			errs = append(errs, helper.FieldError{Field: repository.FieldNISN, Msg: constants.MsgNISNTaken})
		}
	}

	tgl, err := dto.ParseTglMasuk(f.TglMasuk)
	switch {
	case err != nil:
		errs = append(errs, helper.FieldError{Field: FieldTglMasuk, Msg: constants.MsgTglMasukInvalid})
	case tgl.After(s.cutoff):
		errs = append(errs, helper.FieldError{Field: FieldTglMasuk, Msg: constants.MsgTglMasukPastCutoff})
	}
	return errs, tgl, nil
}

// Create validasi lalu simpan. Penolakan unique index dari store
// diterjemahkan ke error field yang sama dengan pre-check.
func (s *SiswaService) Create(ctx context.Context, f dto.SiswaForm) ([]helper.FieldError, error) {
	errs, tgl, err := s.ValidateCreate(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return errs, nil
	}

	err = s.repo.Create(ctx, f.ToModel(tgl))
	var dup *repository.DuplicateError
	switch {
	case err == nil:
		return nil, nil
	case errors.As(err, &dup) && dup.Field == repository.FieldNIK:
		return []helper.FieldError{{Field: repository.FieldNIK, Msg: constants.MsgNIKTaken}}, nil
	case errors.As(err, &dup) && dup.Field == repository.FieldNISN:
		return []helper.FieldError{{Field: repository.FieldNISN, Msg: constants.MsgNISNTaken}}, nil
	default:
		return nil, err
	}
}

/* =========================================================
   UPDATE
   ========================================================= */

func (s *SiswaService) ValidateUpdate(f dto.SiswaForm) ([]helper.FieldError, time.Time) {
	if f.TglMasuk == "" {
		return []helper.FieldError{{Field: FieldTglMasuk, Msg: constants.MsgTglMasukEmpty}}, time.Time{}
	}
	tgl, err := dto.ParseTglMasuk(f.TglMasuk)
	if err != nil {
		return []helper.FieldError{{Field: FieldTglMasuk, Msg: constants.MsgTglMasukInvalid}}, time.Time{}
	}
	if tgl.After(s.cutoff) {
		return []helper.FieldError{{Field: FieldTglMasuk, Msg: constants.MsgTglMasukEditCutoff}}, time.Time{}
	}
	return nil, tgl
}

// Update hanya mengubah tingkat, rombel, tgl_masuk, terdaftar.
// Mengembalikan repository.ErrNotFound jika nisn tidak cocok dengan siswa manapun.
func (s *SiswaService) Update(ctx context.Context, f dto.SiswaForm) ([]helper.FieldError, error) {
	errs, tgl := s.ValidateUpdate(f)
	if len(errs) > 0 {
		return errs, nil
	}
	n, err := s.repo.UpdateEnrollment(ctx, f.NISN, f.ToEnrollmentUpdate(tgl))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("update nisn=%s: %w", f.NISN, repository.ErrNotFound)
	}
	return nil, nil
}

/* =========================================================
   DELETE
   ========================================================= */

func (s *SiswaService) Delete(ctx context.Context, nisn string) (int64, error) {
	return s.repo.DeleteByNISN(ctx, nisn)
}
