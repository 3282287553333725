package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"

	"datasiswa_backend/internals/configs"
	siswaModel "datasiswa_backend/internals/features/siswa/model"
	siswaRepo "datasiswa_backend/internals/features/siswa/repository"
	authHelper "datasiswa_backend/internals/features/users/auth/helper"
	"datasiswa_backend/internals/features/users/user/model"
	userRepo "datasiswa_backend/internals/features/users/user/repository"
	helper "datasiswa_backend/internals/helpers"
)

type testEnv struct {
	app   *fiber.App
	siswa *siswaRepo.MemorySiswaRepository
	users *userRepo.MemoryUserRepository
}

func newTestEnv(t *testing.T, rateMax int, ping func(context.Context) error) *testEnv {
	t.Helper()

	cutoff, _ := time.Parse(time.DateOnly, configs.DefaultEnrollmentCutoff)
	cfg := &configs.AppConfig{
		Environment:      "test",
		StoreDriver:      configs.DriverMemory,
		SessionTTL:       time.Hour,
		CookieSecret:     encryptcookie.GenerateKey(),
		RequestTimeout:   5 * time.Second,
		EnrollmentCutoff: cutoff,
		LoginRateMax:     rateMax,
	}

	users := userRepo.NewMemoryUserRepository()
	hash, err := authHelper.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := users.Create(context.Background(), &model.UserModel{UserName: "admin", PasswordHash: hash}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	siswa := siswaRepo.NewMemorySiswaRepository()

	app := NewApp(Deps{
		Config:   cfg,
		Sessions: helper.NewSessionStore(helper.SessionOptions{TTL: cfg.SessionTTL}),
		Users:    users,
		Siswa:    siswa,
		Ping:     ping,
	})
	return &testEnv{app: app, siswa: siswa, users: users}
}

// client menyimpan cookie sesi antar request seperti browser.
type client struct {
	t      *testing.T
	env    *testEnv
	cookie *http.Cookie
}

type result struct {
	status   int
	location string
	body     string
}

func (c *client) do(method, path string, form url.Values) result {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	if c.cookie != nil {
		req.AddCookie(&http.Cookie{Name: c.cookie.Name, Value: c.cookie.Value})
	}

	resp, err := c.env.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	for _, ck := range resp.Cookies() {
		if ck.Name != helper.SessionCookieName {
			continue
		}
		if ck.Value == "" || ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}

	b, _ := io.ReadAll(resp.Body)
	return result{status: resp.StatusCode, location: resp.Header.Get(fiber.HeaderLocation), body: string(b)}
}

func (c *client) get(path string) result { return c.do(fiber.MethodGet, path, nil) }

func (c *client) post(path string, form url.Values) result { return c.do(fiber.MethodPost, path, form) }

func (c *client) login() {
	c.t.Helper()
	r := c.post("/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	if r.status != fiber.StatusFound || r.location != "/" {
		c.t.Fatalf("login expected 302 /, got %d %q: %s", r.status, r.location, r.body)
	}
}

func expectRedirect(t *testing.T, r result, to string) {
	t.Helper()
	if r.status != fiber.StatusFound || r.location != to {
		t.Fatalf("expected 302 %s, got %d %q", to, r.status, r.location)
	}
}

func expectBody(t *testing.T, r result, status int, contains ...string) {
	t.Helper()
	if r.status != status {
		t.Fatalf("expected status %d, got %d: %s", status, r.status, r.body)
	}
	for _, s := range contains {
		if !strings.Contains(r.body, s) {
			t.Fatalf("expected body to contain %q, got: %s", s, r.body)
		}
	}
}

func siswaForm(nik, nisn, tgl string) url.Values {
	return url.Values{
		"nik":       {nik},
		"nisn":      {nisn},
		"nama":      {"Budi Santoso"},
		"tingkat":   {"10"},
		"rombel":    {"X IPA 1"},
		"tgl_masuk": {tgl},
		"terdaftar": {"Siswa Baru"},
	}
}

/* =========================================================
   AUTH
   ========================================================= */

func TestGuardedRoutesRedirectAnonymous(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	existing := &siswaModel.SiswaModel{NIK: "1111111111111111", NISN: "1111111111", Nama: "Sari", TglMasuk: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := env.siswa.Create(context.Background(), existing); err != nil {
		t.Fatalf("seed siswa: %v", err)
	}

	paths := []struct {
		method, path string
		form         url.Values
	}{
		{fiber.MethodGet, "/", nil},
		{fiber.MethodGet, "/data-siswa", nil},
		{fiber.MethodGet, "/data-siswa/add", nil},
		{fiber.MethodGet, "/data-siswa/edit/1111111111", nil},
		{fiber.MethodPost, "/data-siswa", siswaForm("1234567890123456", "1234567890", "2025-01-01")},
		{fiber.MethodPost, "/data-siswa", url.Values{"_method": {"PUT"}, "nisn": {"1111111111"}, "tingkat": {"12"}, "tgl_masuk": {"2025-02-02"}}},
		{fiber.MethodPost, "/data-siswa", url.Values{"_method": {"DELETE"}, "nisn": {"1111111111"}}},
	}
	for _, p := range paths {
		c := &client{t: t, env: env}
		expectRedirect(t, c.do(p.method, p.path, p.form), "/login")

		// sesi flash tidak membawa identitas
		expectRedirect(t, c.get("/data-siswa"), "/login")
	}
	if env.siswa.Len() != 1 {
		t.Fatalf("anonymous requests must not create or delete records, got %d", env.siswa.Len())
	}
	got, err := env.siswa.FindByNISN(context.Background(), "1111111111")
	if err != nil || got.Tingkat != "" {
		t.Fatalf("anonymous PUT must not update records: %+v %v", got, err)
	}

	c := &client{t: t, env: env}
	expectRedirect(t, c.get("/"), "/login")
	expectBody(t, c.get("/login"), fiber.StatusOK, "Anda harus login terlebih dahulu!")
	r := c.get("/login")
	if strings.Contains(r.body, "Anda harus login terlebih dahulu!") {
		t.Fatalf("flash must be consumed once")
	}
}

func TestLoginPageWithoutSessionSetsNoCookie(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	expectBody(t, c.get("/login"), fiber.StatusOK, `name="username"`)
	if c.cookie != nil {
		t.Fatalf("plain GET /login must not create a session")
	}
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}

	expectBody(t, c.post("/login", url.Values{"username": {""}, "password": {""}}),
		fiber.StatusUnprocessableEntity, "Username wajib diisi!", "Password wajib diisi!")

	expectBody(t, c.post("/login", url.Values{"username": {"admin"}, "password": {"salah"}}),
		fiber.StatusUnauthorized, "Username atau password salah!", `value="admin"`)

	expectBody(t, c.post("/login", url.Values{"username": {"hantu"}, "password": {"admin123"}}),
		fiber.StatusUnauthorized, "Username atau password salah!")

	if c.cookie != nil {
		t.Fatalf("failed logins must not create a session")
	}
}

func TestLoginStoreFailure(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	env.users.Err = errors.New("connection refused")
	c := &client{t: t, env: env}

	r := c.post("/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	expectBody(t, r, fiber.StatusInternalServerError, "Kesalahan server!")
	if strings.Contains(r.body, "connection refused") {
		t.Fatalf("store detail leaked to the page")
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}

	c.login()
	expectBody(t, c.get("/"), fiber.StatusOK, "Login berhasil!", "Selamat datang, admin", "/logout")

	// sudah login: /login kembali ke home
	expectRedirect(t, c.get("/login"), "/")

	old := c.cookie
	expectRedirect(t, c.get("/logout"), "/login")

	// cookie lama tidak berlaku lagi
	c.cookie = old
	expectRedirect(t, c.get("/data-siswa"), "/login")
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, 2, nil)
	c := &client{t: t, env: env}
	bad := url.Values{"username": {"admin"}, "password": {"salah"}}

	for i := 0; i < 2; i++ {
		expectBody(t, c.post("/login", bad), fiber.StatusUnauthorized)
	}
	expectBody(t, c.post("/login", bad), fiber.StatusTooManyRequests, "Terlalu banyak percobaan login")
}

/* =========================================================
   SISWA
   ========================================================= */

func TestCreateScenario(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	c.login()

	expectBody(t, c.get("/data-siswa/add"), fiber.StatusOK, `action="/data-siswa"`)

	expectRedirect(t, c.post("/data-siswa", siswaForm("1234567890123456", "1234567890", "2025-01-01")), "/data-siswa")
	expectBody(t, c.get("/data-siswa"), fiber.StatusOK, "Siswa berhasil ditambahkan!", "1234567890123456", "Budi Santoso", "01-01-2025")

	if _, err := env.siswa.FindByNISN(context.Background(), "1234567890"); err != nil {
		t.Fatalf("record not stored: %v", err)
	}

	// nisn sama, nik beda
	r := c.post("/data-siswa", siswaForm("6543210987654321", "1234567890", "2025-01-01"))
	expectBody(t, r, fiber.StatusUnprocessableEntity, "NISN sudah digunakan!", `value="6543210987654321"`)
	if env.siswa.Len() != 1 {
		t.Fatalf("duplicate inserted, len=%d", env.siswa.Len())
	}
}

func TestCreateValidationErrors(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	c.login()

	r := c.post("/data-siswa", siswaForm("12ab", "99", "2025-11-27"))
	expectBody(t, r, fiber.StatusUnprocessableEntity,
		"NIK harus 16 digit!", "NIK hanya boleh angka!",
		"NISN harus 10 digit!", "Tanggal masuk lewat batas!")
	if strings.Index(r.body, "NIK harus 16 digit!") > strings.Index(r.body, "NISN harus 10 digit!") {
		t.Fatalf("errors must keep rule order")
	}

	// tepat di batas diterima
	expectRedirect(t, c.post("/data-siswa", siswaForm("1111222233334444", "1111222233", "2025-11-26")), "/data-siswa")
	if env.siswa.Len() != 1 {
		t.Fatalf("expected one record, got %d", env.siswa.Len())
	}
}

func TestEditFlow(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	c.login()
	expectRedirect(t, c.post("/data-siswa", siswaForm("1234567890123456", "1234567890", "2025-01-01")), "/data-siswa")

	expectBody(t, c.get("/data-siswa/edit/1234567890"), fiber.StatusOK, `value="PUT"`, `value="2025-01-01"`, "Budi Santoso")
	expectBody(t, c.get("/data-siswa/edit/0000000000"), fiber.StatusNotFound, "Data siswa tidak ditemukan!")

	upd := url.Values{
		"_method":   {"PUT"},
		"nik":       {"9999999999999999"},
		"nisn":      {"1234567890"},
		"nama":      {"Nama Baru"},
		"tingkat":   {"11"},
		"rombel":    {"XI IPA 2"},
		"tgl_masuk": {"2025-11-27"},
		"terdaftar": {"Pindahan"},
	}
	expectBody(t, c.post("/data-siswa", upd), fiber.StatusUnprocessableEntity, "Tanggal masuk tidak boleh melebihi batas!", `value="XI IPA 2"`)

	upd.Set("tgl_masuk", "")
	expectBody(t, c.post("/data-siswa", upd), fiber.StatusUnprocessableEntity, "Tanggal masuk wajib diisi!")

	upd.Set("tgl_masuk", "2025-02-03")
	expectRedirect(t, c.post("/data-siswa", upd), "/data-siswa")
	expectBody(t, c.get("/data-siswa"), fiber.StatusOK, "Data siswa berhasil diupdate!")

	got, err := env.siswa.FindByNISN(context.Background(), "1234567890")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.NIK != "1234567890123456" || got.Nama != "Budi Santoso" {
		t.Fatalf("immutable fields changed: %+v", got)
	}
	if got.Tingkat != "11" || got.Rombel != "XI IPA 2" || got.Terdaftar != "Pindahan" || got.TglMasuk.Format(time.DateOnly) != "2025-02-03" {
		t.Fatalf("enrollment not updated: %+v", got)
	}

	upd.Set("nisn", "0000000000")
	expectBody(t, c.post("/data-siswa", upd), fiber.StatusNotFound, "Data siswa tidak ditemukan!")
}

func TestStoredFieldsSurviveLaterRequests(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	c.login()
	expectRedirect(t, c.post("/data-siswa", siswaForm("1234567890123456", "1234567890", "2025-01-01")), "/data-siswa")

	// request berikutnya memakai ulang buffer yang sama
	for _, nik := range []string{"9999999999999999", "8888888888888888", "7777777777777777"} {
		upd := url.Values{"_method": {"PUT"}, "nik": {nik}, "nisn": {"1234567890"}, "nama": {"PUTi"}, "tgl_masuk": {"2030-01-01"}}
		expectBody(t, c.post("/data-siswa", upd), fiber.StatusUnprocessableEntity, "Tanggal masuk tidak boleh melebihi batas!")
	}

	got, err := env.siswa.FindByNISN(context.Background(), "1234567890")
	if err != nil {
		t.Fatalf("find after later requests: %v", err)
	}
	if got.NIK != "1234567890123456" || got.Nama != "Budi Santoso" || got.Rombel != "X IPA 1" {
		t.Fatalf("stored fields changed: nik=%q nama=%q rombel=%q", got.NIK, got.Nama, got.Rombel)
	}
	exists, err := env.siswa.ExistsByNIK(context.Background(), "1234567890123456")
	if err != nil || !exists {
		t.Fatalf("nik lookup lost: %v %v", exists, err)
	}
}

func TestDeleteFlow(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	c.login()
	expectRedirect(t, c.post("/data-siswa", siswaForm("1234567890123456", "1234567890", "2025-01-01")), "/data-siswa")

	del := url.Values{"_method": {"DELETE"}, "nisn": {"0000000000"}}
	expectRedirect(t, c.post("/data-siswa", del), "/data-siswa")
	expectBody(t, c.get("/data-siswa"), fiber.StatusOK, "Siswa berhasil dihapus!")
	if env.siswa.Len() != 1 {
		t.Fatalf("unknown nisn must not delete anything")
	}

	del.Set("nisn", "1234567890")
	expectRedirect(t, c.post("/data-siswa", del), "/data-siswa")
	if env.siswa.Len() != 0 {
		t.Fatalf("record not deleted")
	}
}

func TestStoreErrorRendersGenericPage(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}
	c.login()

	env.siswa.Err = errors.New("mongo: server selection timeout")
	r := c.get("/data-siswa")
	expectBody(t, r, fiber.StatusInternalServerError, "Kesalahan server!")
	if strings.Contains(r.body, "server selection") {
		t.Fatalf("store detail leaked to the page")
	}
}

/* =========================================================
   PUBLIC
   ========================================================= */

func TestPublicPages(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	c := &client{t: t, env: env}

	expectBody(t, c.get("/about"), fiber.StatusOK, "About")
	expectBody(t, c.get("/tidak-ada"), fiber.StatusNotFound, "Halaman tidak ditemukan!")
}

func TestHealth(t *testing.T) {
	c := &client{t: t, env: newTestEnv(t, 100, nil)}
	expectBody(t, c.get("/health"), fiber.StatusOK, `"status":"OK"`, `"database":"Connected"`)

	down := func(context.Context) error { return errors.New("dial tcp: refused") }
	c = &client{t: t, env: newTestEnv(t, 100, down)}
	expectBody(t, c.get("/health"), fiber.StatusServiceUnavailable, `"status":"DOWN"`)
}
