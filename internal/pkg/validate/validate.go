// Package validate holds the pure input validators used by the portal
// before any request leaves for the loan backend. Each validator returns
// the first violated rule's message, or "" when the value is valid.
// Required-ness is always checked first.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// emailPattern accepts local@domain.tld with non-whitespace parts.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MaxAmount is the largest loan amount a user may request.
	MaxAmount = 1_000_000
	// MaxTermMonths is the longest allowed repayment term.
	MaxTermMonths = 360
)

// Email validates an email address.
func Email(s string) string {
	if s == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(s) {
		return "Invalid email format"
	}
	return ""
}

// Password validates a password.
func Password(s string) string {
	if s == "" {
		return "Password is required"
	}
	if len(s) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}

// FullName validates a full name.
func FullName(s string) string {
	if s == "" {
		return "Full name is required"
	}
	if len(strings.TrimSpace(s)) < 3 {
		return "Full name must be at least 3 characters"
	}
	return ""
}

// Amount validates a loan amount as submitted by a form field.
// An empty or unparseable value is "missing"; "0" is present and fails the
// positive rule instead.
func Amount(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Amount is required"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return "Amount is required"
	}
	return amountRules(v)
}

// AmountValue validates an already-numeric amount. A value of exactly 0 is
// indistinguishable from "missing" here; that matches the historical
// behavior of the frontend and is intentionally preserved (see DESIGN.md).
func AmountValue(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "Amount is required"
	}
	return amountRules(v)
}

func amountRules(v float64) string {
	if v <= 0 {
		return "Amount must be greater than 0"
	}
	if v > MaxAmount {
		return "Amount cannot exceed 1,000,000"
	}
	return ""
}

// TermMonths validates a repayment term as submitted by a form field.
// The whole-number rule is evaluated last, so a fractional value inside the
// valid range reports the integer error rather than being coerced.
func TermMonths(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Term is required"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return "Term is required"
	}
	return termRules(v)
}

// TermMonthsValue validates an already-numeric term. Zero is treated as
// missing, same quirk as AmountValue.
func TermMonthsValue(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "Term is required"
	}
	return termRules(v)
}

func termRules(v float64) string {
	if v <= 0 {
		return "Term must be greater than 0"
	}
	if v > MaxTermMonths {
		return "Term cannot exceed 360 months"
	}
	if v != math.Trunc(v) {
		return "Term must be a whole number"
	}
	return ""
}
