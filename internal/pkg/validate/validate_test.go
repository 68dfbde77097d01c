package validate_test

import (
	"testing"

	"loanhub-portal/internal/pkg/validate"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid minimal address", input: "a@b.c", want: ""},
		{name: "valid regular address", input: "ana.perez@example.com", want: ""},
		{name: "empty", input: "", want: "Email is required"},
		{name: "no at sign", input: "not-an-email", want: "Invalid email format"},
		{name: "missing tld", input: "user@host", want: "Invalid email format"},
		{name: "whitespace in local part", input: "a b@host.com", want: "Invalid email format"},
		{name: "double at", input: "a@@b.c", want: "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Email(tt.input))
		})
	}
}

func TestPassword(t *testing.T) {
	assert.Equal(t, "Password is required", validate.Password(""))
	assert.Equal(t, "Password must be at least 6 characters", validate.Password("abcde"))
	assert.Equal(t, "", validate.Password("abcdef"))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Full name is required", validate.FullName(""))
	assert.Equal(t, "Full name must be at least 3 characters", validate.FullName("Al"))
	// Trimmed length is what counts.
	assert.Equal(t, "Full name must be at least 3 characters", validate.FullName("  A  "))
	assert.Equal(t, "", validate.FullName("Ana Perez"))
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid", input: "5000", want: ""},
		{name: "valid decimal", input: "5000.50", want: ""},
		{name: "at maximum", input: "1000000", want: ""},
		{name: "empty", input: "", want: "Amount is required"},
		{name: "not a number", input: "abc", want: "Amount is required"},
		{name: "zero string is present but not positive", input: "0", want: "Amount must be greater than 0"},
		{name: "negative", input: "-100", want: "Amount must be greater than 0"},
		{name: "above maximum", input: "1000001", want: "Amount cannot exceed 1,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Amount(tt.input))
		})
	}
}

// The numeric entry point keeps the historical falsy-zero behavior: 0 reads
// as missing, not as a non-positive amount.
func TestAmountValueZeroQuirk(t *testing.T) {
	assert.Equal(t, "Amount is required", validate.AmountValue(0))
	assert.Equal(t, "Amount must be greater than 0", validate.AmountValue(-1))
	assert.Equal(t, "", validate.AmountValue(250000))
	assert.Equal(t, "Amount cannot exceed 1,000,000", validate.AmountValue(1000000.01))
}

func TestTermMonths(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid", input: "12", want: ""},
		{name: "at maximum", input: "360", want: ""},
		{name: "empty", input: "", want: "Term is required"},
		{name: "not a number", input: "year", want: "Term is required"},
		{name: "zero string", input: "0", want: "Term must be greater than 0"},
		{name: "negative", input: "-12", want: "Term must be greater than 0"},
		{name: "above maximum", input: "361", want: "Term cannot exceed 360 months"},
		// Integer rule comes last: an in-range fraction reports the whole
		// number error, it is never silently truncated.
		{name: "fractional in range", input: "12.5", want: "Term must be a whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.TermMonths(tt.input))
		})
	}
}

func TestTermMonthsValue(t *testing.T) {
	assert.Equal(t, "Term is required", validate.TermMonthsValue(0))
	assert.Equal(t, "Term must be a whole number", validate.TermMonthsValue(12.5))
	assert.Equal(t, "", validate.TermMonthsValue(36))
}

// Range sweep for the §8-style property: a term is valid iff it is a
// positive integer no greater than 360.
func TestTermMonthsProperty(t *testing.T) {
	for v := -2.0; v <= 362; v += 0.5 {
		msg := validate.TermMonthsValue(v)
		valid := v > 0 && v <= 360 && v == float64(int(v))
		if valid {
			assert.Emptyf(t, msg, "term %v should be valid", v)
		} else {
			assert.NotEmptyf(t, msg, "term %v should be invalid", v)
		}
	}
}
