package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"datasiswa_backend/internals/features/siswa/model"
)

const studentsCollection = "students"

type siswaDocument struct {
	ID        string    `bson:"_id"`
	NIK       string    `bson:"nik"`
	NISN      string    `bson:"nisn"`
	Nama      string    `bson:"nama"`
	Tingkat   string    `bson:"tingkat"`
	Rombel    string    `bson:"rombel"`
	TglMasuk  time.Time `bson:"tgl_masuk"`
	Terdaftar string    `bson:"terdaftar"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newSiswaDocument(m *model.SiswaModel) siswaDocument {
	return siswaDocument{
		ID:        m.ID.String(),
		NIK:       m.NIK,
		NISN:      m.NISN,
		Nama:      m.Nama,
		Tingkat:   m.Tingkat,
		Rombel:    m.Rombel,
		TglMasuk:  m.TglMasuk,
		Terdaftar: m.Terdaftar,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (d siswaDocument) toModel() model.SiswaModel {
	id, _ := uuid.Parse(d.ID)
	return model.SiswaModel{
		ID:        id,
		NIK:       d.NIK,
		NISN:      d.NISN,
		Nama:      d.Nama,
		Tingkat:   d.Tingkat,
		Rombel:    d.Rombel,
		TglMasuk:  d.TglMasuk.UTC(),
		Terdaftar: d.Terdaftar,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type mongoSiswaRepository struct {
	coll *mongo.Collection
}

func NewMongoSiswaRepository(db *mongo.Database) SiswaRepository {
	return &mongoSiswaRepository{coll: db.Collection(studentsCollection)}
}

func (r *mongoSiswaRepository) Migrate(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "nik", Value: 1}}, Options: options.Index().SetUnique(true).SetName(IndexNIK)},
		{Keys: bson.D{{Key: "nisn", Value: 1}}, Options: options.Index().SetUnique(true).SetName(IndexNISN)},
		{Keys: bson.D{{Key: "nama", Value: 1}}, Options: options.Index().SetName("idx_siswa_nama")},
	})
	if err != nil {
		return fmt.Errorf("buat index students: %w", err)
	}
	return nil
}

func (r *mongoSiswaRepository) FindAll(ctx context.Context) ([]model.SiswaModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "nama", Value: 1}, {Key: "nisn", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ambil daftar siswa: %w", err)
	}
	defer cur.Close(ctx)

	var docs []siswaDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode daftar siswa: %w", err)
	}
	out := make([]model.SiswaModel, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (r *mongoSiswaRepository) FindByNISN(ctx context.Context, nisn string) (*model.SiswaModel, error) {
	var doc siswaDocument
	if err := r.coll.FindOne(ctx, bson.M{"nisn": nisn}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cari siswa nisn=%s: %w", nisn, err)
	}
	m := doc.toModel()
	return &m, nil
}

func (r *mongoSiswaRepository) ExistsByNIK(ctx context.Context, nik string) (bool, error) {
	return r.exists(ctx, bson.M{"nik": nik})
}

func (r *mongoSiswaRepository) ExistsByNISN(ctx context.Context, nisn string) (bool, error) {
	return r.exists(ctx, bson.M{"nisn": nisn})
}

func (r *mongoSiswaRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("cek siswa %v: %w", filter, err)
	}
	return n > 0, nil
}

func (r *mongoSiswaRepository) Create(ctx context.Context, siswa *model.SiswaModel) error {
	siswa.EnsureID()
	now := time.Now().UTC()
	siswa.CreatedAt, siswa.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, newSiswaDocument(siswa)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateFromText(err.Error())
		}
		return fmt.Errorf("simpan siswa: %w", err)
	}
	return nil
}

func (r *mongoSiswaRepository) UpdateEnrollment(ctx context.Context, nisn string, upd model.SiswaEnrollmentUpdate) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"nisn": nisn}, bson.M{"$set": bson.M{
		"tingkat":    upd.Tingkat,
		"rombel":     upd.Rombel,
		"tgl_masuk":  upd.TglMasuk,
		"terdaftar":  upd.Terdaftar,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, fmt.Errorf("update siswa nisn=%s: %w", nisn, err)
	}
	return res.MatchedCount, nil
}

func (r *mongoSiswaRepository) DeleteByNISN(ctx context.Context, nisn string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"nisn": nisn})
	if err != nil {
		return 0, fmt.Errorf("hapus siswa nisn=%s: %w", nisn, err)
	}
	return res.DeletedCount, nil
}
