package validation

import (
	"regexp"
	"strings"
	"time"
)

// Violation is a single field-level or cross-field validation failure.
type Violation struct {
	FieldPath string `json:"fieldPath"`
	Message   string `json:"message"`
}

// Validator accumulates violations in the order rules are evaluated.
// Insertion order is preserved so the first violation matches field
// declaration order.
type Validator struct {
	violations []Violation
}

func NewValidator() *Validator {
	return &Validator{violations: make([]Violation, 0, 4)}
}

func (v *Validator) Add(fieldPath, message string) {
	if v == nil || strings.TrimSpace(message) == "" {
		return
	}
	v.violations = append(v.violations, Violation{
		FieldPath: strings.TrimSpace(fieldPath),
		Message:   message,
	})
}

// Required reports a violation for blank values. It returns true when the
// value is present, so dependent checks can be suppressed on failure.
func (v *Validator) Required(fieldPath, value, message string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(fieldPath, message)
		return false
	}
	return true
}

func (v *Validator) Enum(fieldPath, value string, allowed []string, message string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(fieldPath, message)
		return false
	}
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	v.Add(fieldPath, message)
	return false
}

func (v *Validator) Pattern(fieldPath, value string, pattern *regexp.Regexp, message string) bool {
	if !pattern.MatchString(value) {
		v.Add(fieldPath, message)
		return false
	}
	return true
}

func (v *Validator) HasViolations() bool {
	return v != nil && len(v.violations) > 0
}

func (v *Validator) Violations() []Violation {
	if v == nil || len(v.violations) == 0 {
		return nil
	}
	out := make([]Violation, len(v.violations))
	copy(out, v.violations)
	return out
}

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
