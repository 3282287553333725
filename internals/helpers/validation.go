package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError satu pesan validasi untuk satu field form.
type FieldError struct {
	Field string
	Msg   string
}

// Rule memetakan tag validator ke pesan yang tampil di form.
type Rule struct {
	Tag string
	Msg string
}

// CheckField menjalankan semua rule (tanpa berhenti di error pertama)
// dan mengembalikan pesan sesuai urutan rule.
func CheckField(field, value string, rules ...Rule) []FieldError {
	var out []FieldError
	for _, r := range rules {
		if err := validate.Var(value, r.Tag); err != nil {
			out = append(out, FieldError{Field: field, Msg: r.Msg})
		}
	}
	return out
}
