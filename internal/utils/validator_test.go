// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type plateForm struct {
	Plate string `validate:"required,plate"`
}

type oemForm struct {
	Code string `validate:"required,oem_code"`
}

func TestPlateValidation(t *testing.T) {
	valid := []string{"1234BCD", "1234 BCD", "M-AB-1234", "ab1"}
	for _, p := range valid {
		assert.NoError(t, ValidateStruct(&plateForm{Plate: p}), "plate %q should be valid", p)
	}

	invalid := []string{"", "ab", "-1234BCD", "1234BCD!", "12345678901234567890"}
	for _, p := range invalid {
		assert.Error(t, ValidateStruct(&plateForm{Plate: p}), "plate %q should be invalid", p)
	}
}

func TestOemCodeValidation(t *testing.T) {
	valid := []string{"04465-42180", "06A 906 461 L", "90915-YZZE1", "A.123/45"}
	for _, c := range valid {
		assert.NoError(t, ValidateStruct(&oemForm{Code: c}), "code %q should be valid", c)
	}

	invalid := []string{"", "X", "/123", "04465_42180"}
	for _, c := range invalid {
		assert.Error(t, ValidateStruct(&oemForm{Code: c}), "code %q should be invalid", c)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&plateForm{})
	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "plate", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.NotEmpty(t, errs[0].Message)
}
