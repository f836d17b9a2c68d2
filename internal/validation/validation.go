package validation

import (
	"fmt"
	"sort"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err wraps the collected violations in an *Error, or returns nil when the
// record passed every check.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &Error{Violations: v}
}

// Error reports a malformed record that was refused before any write was
// issued to the store.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, msg := range e.Violations {
		fields = append(fields, f+": "+msg)
	}
	sort.Strings(fields)
	return "invalid record: " + strings.Join(fields, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RequiredAt flags a missing value inside a repeated field, e.g. items[2].description.
func RequiredAt(field string, index int, sub, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[fmt.Sprintf("%s[%d].%s", field, index, sub)] = "required"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// PositiveFloatAt is PositiveFloat for a value inside a repeated field,
// e.g. items[2].quantity.
func PositiveFloatAt(field string, index int, sub string, val float64, v Violations) {
	PositiveFloat(fmt.Sprintf("%s[%d].%s", field, index, sub), val, v)
}
