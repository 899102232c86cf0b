package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&slotRequest{Email: "nope", Date: "12/01/2026", StartTime: "25:99", Gender: "x"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "date must match the layout 2006-01-02", errs["date"])
	assert.Equal(t, "start_time must match the layout 15:04", errs["start_time"])
	assert.Equal(t, "gender must be one of: male female", errs["gender"])
}

func TestValidate_Accepts(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&slotRequest{Email: "a@example.com", Date: "2026-01-12", StartTime: "09:30"}))
}

func TestFormatValidationErrors_IgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(assert.AnError))
}
