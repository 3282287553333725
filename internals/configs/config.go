package configs

import (
	"context"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Driver penyimpanan yang didukung.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// DefaultEnrollmentCutoff adalah batas akhir tanggal masuk siswa.
const DefaultEnrollmentCutoff = "2025-11-26"

type AppConfig struct {
	Port        string
	Environment string

	StoreDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MongoURI string
	MongoDB  string

	SessionTTL     time.Duration
	CookieSecret   string
	CookieSecure   bool
	RequestTimeout time.Duration

	EnrollmentCutoff time.Time

	RunSeeds        bool
	SeedSampleSiswa bool
	SeedUsersFile   string
	AdminUsername   string
	AdminPassword   string

	LoginRateMax int
	AccessLog    bool
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("⚠️ %s tidak valid (%q), pakai default %s", key, v, def)
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// Load membaca seluruh konfigurasi aplikasi dari ENV.
func Load() *AppConfig {
	cfg := &AppConfig{
		Port:        GetEnv("PORT", "3000"),
		Environment: GetEnv("APP_ENV", "development"),

		StoreDriver: strings.ToLower(GetEnv("STORE_DRIVER", DriverPostgres)),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "data_siswa"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "disable"),

		MongoURI: GetEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  GetEnv("MONGO_DB", "data_siswa"),

		SessionTTL:     getEnvDuration("SESSION_TTL", time.Hour),
		CookieSecret:   GetEnv("COOKIE_SECRET"),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),

		RunSeeds:        getEnvBool("RUN_SEEDS", false),
		SeedSampleSiswa: getEnvBool("SEED_SAMPLE_SISWA", false),
		SeedUsersFile:   GetEnv("SEED_USERS_FILE"),
		AdminUsername:   GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   GetEnv("ADMIN_PASSWORD"),

		LoginRateMax: getEnvInt("LOGIN_RATE_MAX", 5),
		AccessLog:    getEnvBool("ACCESS_LOG", true),
	}

	cutoffRaw := GetEnv("ENROLLMENT_CUTOFF", DefaultEnrollmentCutoff)
	cutoff, err := time.Parse(time.DateOnly, cutoffRaw)
	if err != nil {
		log.Printf("⚠️ ENROLLMENT_CUTOFF tidak valid (%q), pakai %s", cutoffRaw, DefaultEnrollmentCutoff)
		cutoff, _ = time.Parse(time.DateOnly, DefaultEnrollmentCutoff)
	}
	cfg.EnrollmentCutoff = cutoff

	if !validCookieSecret(cfg.CookieSecret) {
		if cfg.CookieSecret != "" {
			log.Println("❌ COOKIE_SECRET harus base64 dari 32 byte, membuat key sementara")
		} else {
			log.Println("⚠️ COOKIE_SECRET belum diset, membuat key sementara (sesi hilang saat restart)")
		}
		cfg.CookieSecret = encryptcookie.GenerateKey()
	}

	return cfg
}

func validCookieSecret(s string) bool {
	if s == "" {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return len(raw) == 16 || len(raw) == 24 || len(raw) == 32
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
