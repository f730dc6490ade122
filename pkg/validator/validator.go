package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex       = regexp.MustCompile(`^\d{10}$`)
	displayDateRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// phone10: exactly 10 digits, nothing else.
	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	// ddmmyyyy: zero-padded dd/mm/yyyy that parses to a real calendar date.
	// The regex keeps out lenient spellings Go's parser would accept (e.g. 3/1/2025).
	v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !displayDateRegex.MatchString(s) {
			return false
		}
		_, err := time.Parse("02/01/2006", s)
		return err == nil
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "datetime":
				errors[field] = field + " must be a date in format " + e.Param()
			case "ddmmyyyy":
				errors[field] = field + " must be a date in format dd/mm/yyyy"
			case "phone10":
				errors[field] = field + " must be exactly 10 digits"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
