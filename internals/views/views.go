// Package views merender halaman HTML dari template yang di-embed ke binary.
package views

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

const ext = ".html"

func New() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return NewFS(sub)
}

// NewFS: nama template = path relatif tanpa ekstensi ("login", "layouts/main-layout").
// Layout menyisipkan halaman lewat {{ embed }}.
func NewFS(fsys fs.FS) *html.Engine {
	engine := html.NewFileSystem(http.FS(fsys), ext)
	engine.AddFunc("tgl", Tgl)
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	return engine
}

// Tgl format tanggal tabel (dd-mm-yyyy), "-" jika kosong.
func Tgl(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-01-2006")
}
