package database

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"datasiswa_backend/internals/configs"
	siswaRepo "datasiswa_backend/internals/features/siswa/repository"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
)

// Backend: repository + ping/close untuk driver yang dipilih lewat STORE_DRIVER.
type Backend struct {
	Driver string
	Users  userRepo.UserRepository
	Siswa  siswaRepo.SiswaRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Migrate membuat tabel/koleksi beserta unique index nik, nisn, username.
func (b *Backend) Migrate(ctx context.Context) error {
	if err := b.Users.Migrate(ctx); err != nil {
		return fmt.Errorf("migrasi users: %w", err)
	}
	if err := b.Siswa.Migrate(ctx); err != nil {
		return fmt.Errorf("migrasi students: %w", err)
	}
	return nil
}

func Open(ctx context.Context, cfg *configs.AppConfig) (*Backend, error) {
	switch cfg.StoreDriver {
	case configs.DriverPostgres:
		db, err := ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		TunePool(db)
		return &Backend{
			Driver: cfg.StoreDriver,
			Users:  userRepo.NewGormUserRepository(db),
			Siswa:  siswaRepo.NewGormSiswaRepository(db),
			ping: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	case configs.DriverMongo:
		client, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.MongoDB)
		return &Backend{
			Driver: cfg.StoreDriver,
			Users:  userRepo.NewMongoUserRepository(mdb),
			Siswa:  siswaRepo.NewMongoSiswaRepository(mdb),
			ping: func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			},
			close: client.Disconnect,
		}, nil

	case configs.DriverMemory:
		log.Println("⚠️ STORE_DRIVER=memory: data hilang saat restart")
		return &Backend{
			Driver: cfg.StoreDriver,
			Users:  userRepo.NewMemoryUserRepository(),
			Siswa:  siswaRepo.NewMemorySiswaRepository(),
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER tidak dikenal: %q", cfg.StoreDriver)
}

func ConnectPostgres(cfg *configs.AppConfig) (*gorm.DB, error) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  postgresDSN(cfg),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("konek postgres: %w", err)
	}
	log.Println("✅ DB connected.")
	return db, nil
}

// postgresDSN: user/password di-escape lewat url.UserPassword.
// statement_timeout selaras dengan REQUEST_TIMEOUT.
func postgresDSN(cfg *configs.AppConfig) string {
	q := url.Values{}
	q.Set("sslmode", cfg.DBSSLMode)
	q.Set("application_name", "data_siswa")
	q.Set("options", fmt.Sprintf("-c statement_timeout=%d", cfg.RequestTimeout.Milliseconds()))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "/" + cfg.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func ConnectMongo(ctx context.Context, cfg *configs.AppConfig) (*mongo.Client, error) {
	log.Println("🔌 Koneksi ke MongoDB...")

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("data_siswa").
		SetServerSelectionTimeout(5 * time.Second).
		SetTimeout(cfg.RequestTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("konek mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Println("✅ MongoDB connected.")
	return client, nil
}
