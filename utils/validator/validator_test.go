package validatorx_test

import (
	"sync"
	"testing"

	validatorx "github.com/softglass/calculator-backend/utils/validator"
	"github.com/stretchr/testify/assert"
)

type phoneForm struct {
	Phone string `validate:"required,min=10,max=20,phonedigits"`
}

func TestValidateStruct_PhoneDigits(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "plain digits", phone: "89001234567"},
		{name: "formatted", phone: "+7 (900) 123-45-67"},
		{name: "too few digits", phone: "+7 (900) 12-3", wantErr: true},
		{name: "letters padded", phone: "call-me-maybe-123", wantErr: true},
		{name: "too long", phone: "+7 (900) 123-45-67 ext 1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatorx.ValidateStruct(&phoneForm{Phone: tt.phone})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 11, validatorx.CountDigits("+7 (900) 123-45-67"))
	assert.Equal(t, 0, validatorx.CountDigits("abc"))
}

func TestValidateStruct_ConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				validatorx.Init()
			}
			errs[i] = validatorx.ValidateStruct(&phoneForm{Phone: "89001234567"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
