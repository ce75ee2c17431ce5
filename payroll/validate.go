/*
validate.go - Pure per-field validators

PURPOSE:
  Every mutable attribute has one validator of the form

    ValidX(raw any) (value T, defaulted bool)

  which returns the value to store and whether the raw input had to be
  replaced by the default. Setters and constructors call these at every
  mutation site; nothing is validated implicitly.

INTEGER INPUTS:
  "Integer" means a Go integer kind or an integral json.Number (what the
  API decoder produces with UseNumber). Floats, strings, bools and nil
  are the wrong type and fall back to the default, as the original
  console client did for non-int input.
*/
package payroll

import (
	"encoding/json"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// DEFAULTS AND RANGES
// =============================================================================

const (
	DefaultName   = "unidentified"
	DefaultNumber = 999
	MinNumber     = 100
	MaxNumber     = 999
	BenefitCutoff = 500

	DefaultHourlyRate = 1
	MinHourlyRate     = 0
	MaxHourlyRate     = 20
	DefaultHours      = 0
	MinHours          = 0
	MaxHours          = 40

	DefaultSalary     = 50000
	MinSalary         = 50000
	MaxSalary         = 200000
	DefaultCapacity   = 10
	BonusAmount       = 10000
	BonusWorkerCutoff = 5

	DefaultAccountNumber = "123-4567890"
	AccountNumberLength  = 10
	accountPrefixLength  = 3

	DefaultContribution = 0
	MinContribution     = 0
	MaxContribution     = 5000
)

// =============================================================================
// VALIDATORS
// =============================================================================

// ValidName accepts any string that is not made only of numeric runes.
// The empty string is not numeric and is therefore kept.
func ValidName(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok || isNumeric(s) {
		return DefaultName, true
	}
	return s, false
}

// ValidNumber accepts an employee number in [100, 999].
func ValidNumber(raw any) (int, bool) {
	return validRange(raw, MinNumber, MaxNumber, DefaultNumber)
}

// ValidShift accepts a Shift value, an integer in [1, 3] or a shift name.
func ValidShift(raw any) (Shift, bool) {
	switch v := raw.(type) {
	case Shift:
		if v.IsValid() {
			return v, false
		}
	case string:
		if s, ok := parseShiftName(v); ok {
			return s, false
		}
	default:
		if n, ok := asInt(raw); ok && Shift(n).IsValid() {
			return Shift(n), false
		}
	}
	return DefaultShift, true
}

func ValidHourlyRate(raw any) (int, bool) {
	return validRange(raw, MinHourlyRate, MaxHourlyRate, DefaultHourlyRate)
}

func ValidHoursWorked(raw any) (int, bool) {
	return validRange(raw, MinHours, MaxHours, DefaultHours)
}

func ValidSalary(raw any) (int, bool) {
	return validRange(raw, MinSalary, MaxSalary, DefaultSalary)
}

// ValidCapacity accepts any positive integer roster capacity.
func ValidCapacity(raw any) (int, bool) {
	return validRange(raw, 1, math.MaxInt, DefaultCapacity)
}

// ValidWorkerCount accepts a seeded worker count in [0, capacity].
func ValidWorkerCount(raw any, capacity int) (int, bool) {
	return validRange(raw, 0, capacity, 0)
}

// ValidAccountNumber accepts exactly ten characters and returns them
// formatted as XXX-XXXXXXX.
func ValidAccountNumber(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok || utf8.RuneCountInString(s) != AccountNumberLength {
		return DefaultAccountNumber, true
	}
	r := []rune(s)
	return string(r[:accountPrefixLength]) + "-" + string(r[accountPrefixLength:]), false
}

func ValidContribution(raw any) (int, bool) {
	return validRange(raw, MinContribution, MaxContribution, DefaultContribution)
}

// =============================================================================
// HELPERS
// =============================================================================

func validRange(raw any, lo, hi, def int) (int, bool) {
	n, ok := asInt(raw)
	if !ok || n < lo || n > hi {
		return def, true
	}
	return n, false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsNumber(r) }) < 0
}

// asInt converts integer-typed raw values. Shift is deliberately not an
// integer here: it only validates as a shift.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return asInt(n)
	}
	return 0, false
}
