package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	assert.NotNil(t, v1)
	assert.Same(t, v1, v2)
}

func TestIsPeriod(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2025-03", true},
		{"1999-12", true},
		{"2025-3", false},
		{"25-03", false},
		{"2025/03", false},
		{"2025-03-01", false},
		{" 2025-03", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPeriod(tt.in))
		})
	}
}

type periodRequest struct {
	Date  string `validate:"required,period"`
	Score *int   `validate:"required,min=0,max=100"`
}

func intPtr(v int) *int { return &v }

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(&periodRequest{Date: "2025-03", Score: intPtr(0)}))
	assert.Empty(t, ValidateStruct(&periodRequest{Date: "2025-03", Score: intPtr(100)}))

	errs := ValidateStruct(&periodRequest{Date: "2025-03"})
	assert.True(t, HasTag(errs, "required"))

	errs = ValidateStruct(&periodRequest{Date: "March", Score: intPtr(10)})
	assert.True(t, HasTag(errs, "period"))
	assert.False(t, HasTag(errs, "required"))

	errs = ValidateStruct(&periodRequest{Date: "2025-03", Score: intPtr(101)})
	assert.True(t, HasTag(errs, "min", "max"))

	errs = ValidateStruct(&periodRequest{Date: "2025-03", Score: intPtr(-1)})
	assert.True(t, HasTag(errs, "min"))
}

type bindRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

func TestBindingMessage(t *testing.T) {
	RegisterGinValidators()
	v := binding.Validator

	err := v.ValidateStruct(&bindRequest{Name: "kim"})
	assert.Equal(t, "email is required", BindingMessage(err))

	err = v.ValidateStruct(&bindRequest{Email: "nope", Name: "kim"})
	assert.Equal(t, "email must be a valid email", BindingMessage(err))

	assert.Equal(t, "Invalid request body", BindingMessage(errors.New("unexpected EOF")))

	var body struct {
		Korean *json.Number `json:"korean"`
	}
	err = json.Unmarshal([]byte(`{"korean": true}`), &body)
	assert.Equal(t, "korean has an invalid type", BindingMessage(err))
}
