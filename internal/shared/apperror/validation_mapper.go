package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// recipient_phone -> Recipient Phone
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError mengubah validator.ValidationErrors menjadi satu AppError
// dengan pesan per-field yang mudah dibaca.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			field := formatFieldName(e.Field())
			switch e.Tag() {
			case "required":
				details = append(details, field+" is required")
			case "email":
				details = append(details, field+" must be a valid email address")
			case "min":
				details = append(details, field+" must be at least "+e.Param()+" characters")
			default:
				details = append(details, field+" is invalid")
			}
		}

		return New(
			CodeInvalidInput,
			strings.Join(details, "; "),
			http.StatusBadRequest,
		).WithDetails(details)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
