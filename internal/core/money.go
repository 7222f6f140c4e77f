// Package core provides money parsing and handling utilities.
//
// This file contains the decimal Amount type used for every stored quantity
// and the parsing rules applied to amounts read from text.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative decimal quantity.
type Amount struct {
	decimal.Decimal
}

// ZeroAmount is the additive identity.
var ZeroAmount = Amount{Decimal: decimal.Zero}

// NewAmount wraps d without validating it.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MustAmount parses s and panics on failure. Intended for tests and constants.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAmount converts a decimal string to an Amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Negative
// values, signs and non-numeric input are rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("100.0") -> 100, nil
//	ParseAmount("-1")    -> error
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Amount{}, fmt.Errorf("%w %q: sign not allowed", ErrInvalidAmount, s)
	}
	if strings.ContainsAny(s, "eE") {
		return Amount{}, fmt.Errorf("%w %q: exponent not allowed", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w %q: %v", ErrInvalidAmount, s, err)
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) Validate() error {
	if a.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, a.String())
	}
	return nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// Equal compares by value, so 100 equals 100.00.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// Text is the canonical decimal form written to storage.
func (a Amount) Text() string {
	return a.Decimal.String()
}

// Fixed2 formats with exactly two decimals for display.
func (a Amount) Fixed2() string {
	return a.StringFixed(2)
}
