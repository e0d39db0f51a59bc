// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	plateRegexp   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 -]{2,14}$`)
	oemCodeRegexp = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 ./-]{1,49}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("plate", validatePlate)
	validate.RegisterValidation("oem_code", validateOemCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePlate(fl validator.FieldLevel) bool {
	return plateRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateOemCode(fl validator.FieldLevel) bool {
	return oemCodeRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "plate":
		return "License plate must be 3-15 characters of letters, digits, spaces or dashes"
	case "oem_code":
		return "OEM code must be 2-50 characters of letters, digits, spaces, dots, slashes or dashes"
	default:
		return e.Field() + " is invalid"
	}
}
