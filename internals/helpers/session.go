package helper

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Nama cookie & key yang disimpan di sesi
const (
	SessionCookieName = "siswa_session"

	sessKeyUserID   = "uid"
	sessKeyUsername = "uname"
	sessKeyFlash    = "msg"
)

// Locals yang diisi oleh guard login
const (
	LocUserID   = "user_id"
	LocUsername = "user_name"
)

type SessionOptions struct {
	TTL    time.Duration
	Secure bool
}

// NewSessionStore: sesi disimpan di memori proses, browser hanya pegang id.
func NewSessionStore(opts SessionOptions) *session.Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   opts.Secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Identity adalah user yang sedang login.
type Identity struct {
	UserID   string
	Username string
}

func CurrentIdentity(sess *session.Session) (Identity, bool) {
	uid, _ := sess.Get(sessKeyUserID).(string)
	if uid == "" {
		return Identity{}, false
	}
	uname, _ := sess.Get(sessKeyUsername).(string)
	return Identity{UserID: uid, Username: uname}, true
}

// SignIn mengganti id sesi (anti fixation) lalu menyimpan identitas.
func SignIn(sess *session.Session, id Identity) error {
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessKeyUserID, id.UserID)
	sess.Set(sessKeyUsername, id.Username)
	return nil
}

// SetFlash: hanya satu pesan tertunda per sesi, pesan baru menimpa yang lama.
func SetFlash(sess *session.Session, msg string) {
	sess.Set(sessKeyFlash, msg)
}

// PopFlash mengambil pesan flash dan menghapusnya dari sesi.
func PopFlash(sess *session.Session) string {
	msg, _ := sess.Get(sessKeyFlash).(string)
	if msg != "" {
		sess.Delete(sessKeyFlash)
	}
	return msg
}

// Flash menyimpan pesan ke sesi request ini lalu save.
func Flash(c *fiber.Ctx, store *session.Store, msg string) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	SetFlash(sess, msg)
	return sess.Save()
}

// TakeFlash mengambil pesan flash untuk dirender (sekali pakai).
func TakeFlash(c *fiber.Ctx, store *session.Store) (string, error) {
	sess, err := store.Get(c)
	if err != nil {
		return "", err
	}
	msg := PopFlash(sess)
	if msg == "" {
		return "", nil
	}
	return msg, sess.Save()
}
