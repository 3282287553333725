package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"datasiswa_backend/internals/features/siswa/model"
)

// MemorySiswaRepository: STORE_DRIVER=memory dan fake untuk test.
// Unique nik/nisn dijaga seperti unique index di database.
type MemorySiswaRepository struct {
	mu     sync.RWMutex
	byNISN map[string]model.SiswaModel

	// Err jika diisi dikembalikan oleh semua operasi.
	Err error
}

func NewMemorySiswaRepository() *MemorySiswaRepository {
	return &MemorySiswaRepository{byNISN: map[string]model.SiswaModel{}}
}

func (r *MemorySiswaRepository) Migrate(ctx context.Context) error {
	return r.Err
}

func (r *MemorySiswaRepository) FindAll(ctx context.Context) ([]model.SiswaModel, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	out := make([]model.SiswaModel, 0, len(r.byNISN))
	for _, s := range r.byNISN {
		out = append(out, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b model.SiswaModel) int {
		if c := strings.Compare(a.Nama, b.Nama); c != 0 {
			return c
		}
		return strings.Compare(a.NISN, b.NISN)
	})
	return out, nil
}

func (r *MemorySiswaRepository) FindByNISN(ctx context.Context, nisn string) (*model.SiswaModel, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byNISN[nisn]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySiswaRepository) ExistsByNIK(ctx context.Context, nik string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasNIK(nik), nil
}

func (r *MemorySiswaRepository) ExistsByNISN(ctx context.Context, nisn string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byNISN[nisn]
	return ok, nil
}

func (r *MemorySiswaRepository) hasNIK(nik string) bool {
	for _, s := range r.byNISN {
		if s.NIK == nik {
			return true
		}
	}
	return false
}

func (r *MemorySiswaRepository) Create(ctx context.Context, siswa *model.SiswaModel) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasNIK(siswa.NIK) {
		return &DuplicateError{Field: FieldNIK}
	}
	if _, ok := r.byNISN[siswa.NISN]; ok {
		return &DuplicateError{Field: FieldNISN}
	}
	siswa.EnsureID()
	now := time.Now().UTC()
	siswa.CreatedAt, siswa.UpdatedAt = now, now
	r.byNISN[siswa.NISN] = *siswa
	return nil
}

func (r *MemorySiswaRepository) UpdateEnrollment(ctx context.Context, nisn string, upd model.SiswaEnrollmentUpdate) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byNISN[nisn]
	if !ok {
		return 0, nil
	}
	s.Tingkat = upd.Tingkat
	s.Rombel = upd.Rombel
	s.TglMasuk = upd.TglMasuk
	s.Terdaftar = upd.Terdaftar
	s.UpdatedAt = time.Now().UTC()
	r.byNISN[nisn] = s
	return 1, nil
}

func (r *MemorySiswaRepository) DeleteByNISN(ctx context.Context, nisn string) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byNISN[nisn]; !ok {
		return 0, nil
	}
	delete(r.byNISN, nisn)
	return 1, nil
}

// Len jumlah siswa tersimpan
func (r *MemorySiswaRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byNISN)
}
