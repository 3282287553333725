package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"datasiswa_backend/internals/features/siswa/model"
)

func TestMongoDeleteByNISNRemovesOneDocument(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})
		repo := NewMongoSiswaRepository(mt.DB)

		n, err := repo.DeleteByNISN(context.Background(), "1234567890")
		if err != nil || n != 1 {
			mt.Fatalf("expected 1 deleted, got %d %v", n, err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "delete" {
			mt.Fatalf("expected delete command, got %+v", evt)
		}
		first := evt.Command.Lookup("deletes", "0").Document()
		if limit := first.Lookup("limit").AsInt64(); limit != 1 {
			mt.Fatalf("expected limit 1, got %d", limit)
		}
		if nisn := first.Lookup("q", "nisn").StringValue(); nisn != "1234567890" {
			mt.Fatalf("unexpected filter nisn %q", nisn)
		}
	})
}

func TestMongoCreateTranslatesDuplicateKey(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate nisn", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: `E11000 duplicate key error collection: data_siswa.students index: uq_siswa_nisn dup key: { nisn: "1234567890" }`,
		}))
		repo := NewMongoSiswaRepository(mt.DB)

		err := repo.Create(context.Background(), newSiswa("1234567890123456", "1234567890", "Budi"))
		var dup *DuplicateError
		if !errors.As(err, &dup) || dup.Field != FieldNISN || !errors.Is(err, ErrDuplicate) {
			mt.Fatalf("expected nisn duplicate, got %v", err)
		}
	})
}

func TestMongoUpdateEnrollmentReportsMatched(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})
		repo := NewMongoSiswaRepository(mt.DB)

		n, err := repo.UpdateEnrollment(context.Background(), "0000000000", model.SiswaEnrollmentUpdate{Tingkat: "11", TglMasuk: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)})
		if err != nil || n != 0 {
			mt.Fatalf("expected 0 matched, got %d %v", n, err)
		}
	})
}
