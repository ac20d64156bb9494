package entities

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var bookValidator = newValidator()

// newValidator reports field names by their JSON key so that messages match
// what users see in the library file.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateBook checks the struct tags on Book. A non-nil result is a
// validator.ValidationErrors value.
func ValidateBook(b Book) error {
	return bookValidator.Struct(b)
}
