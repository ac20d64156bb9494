package library

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// validateBook turns struct tag failures into a *ValidationError naming the
// first offending field.
func validateBook(b entities.Book) error {
	err := entities.ValidateBook(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Reason: friendlyReason(fe)}
}

func friendlyReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
