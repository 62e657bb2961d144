package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountScale is the number of fractional digits stored for every amount.
	AmountScale = 2
	// MaxIntegerDigits bounds the integer part of an amount, matching a
	// decimal(15,2) column.
	MaxIntegerDigits = 13

	// maxAmountLength caps the raw input handed to the decimal parser.
	maxAmountLength = 64
)

var amountLimit = decimal.New(1, MaxIntegerDigits)

// ParseAmount parses a decimal amount such as "1000" or "250.50".
// It rejects empty or non-numeric input, exponent notation, values with more
// than MaxIntegerDigits integer digits and anything with more than
// AmountScale fractional digits.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, Invalid(field, "amount is required")
	}
	if len(s) > maxAmountLength {
		return decimal.Zero, Invalid(field, "amount is too long")
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, Invalid(field, "%q must be written in plain decimal notation", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, Invalid(field, "%q is not a decimal number", s)
	}
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, Invalid(field, "amount must have at most %d integer digits", MaxIntegerDigits)
	}
	if !d.Equal(d.Truncate(AmountScale)) {
		return decimal.Zero, Invalid(field, "%q has more than %d decimal places", s, AmountScale)
	}
	return d, nil
}

// ParsePositiveAmount is ParseAmount restricted to values greater than zero.
func ParsePositiveAmount(field, s string) (decimal.Decimal, error) {
	d, err := ParseAmount(field, s)
	if err != nil {
		return d, err
	}
	if !d.IsPositive() {
		return decimal.Zero, Invalid(field, "amount must be greater than zero")
	}
	return d, nil
}

// FormatAmount renders d with exactly AmountScale fractional digits.
// This is also the persisted form, so equal amounts always compare equal as text.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
