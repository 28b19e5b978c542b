package validatorx

import (
	"sync"
	"unicode"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v    *gpvalidator.Validate
	once sync.Once
)

// MinPhoneDigits is the smallest number of digits accepted by the phonedigits rule.
const MinPhoneDigits = 10

// Init initializes the validator singleton (idempotent)
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
		_ = v.RegisterValidation("phonedigits", validatePhoneDigits)
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}

// validatePhoneDigits accepts free-form phone strings ("+7 (900) 123-45-67")
// as long as they carry enough digits.
func validatePhoneDigits(fl gpvalidator.FieldLevel) bool {
	return CountDigits(fl.Field().String()) >= MinPhoneDigits
}

func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
