package validation

import (
	"net/mail"
	"slices"
	"strings"
)

// Errors maps a form field to its error messages.
type Errors map[string][]string

func (e Errors) Empty() bool { return len(e) == 0 }

// Add appends msg to field's messages.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Basic validators
func Required(field, value, msg string, e Errors) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, msg)
	}
}

func OneOf(field, value string, allowed []string, msg string, e Errors) {
	if !slices.Contains(allowed, value) {
		e.Add(field, msg)
	}
}

func Positive(field string, val int64, msg string, e Errors) {
	if val <= 0 {
		e.Add(field, msg)
	}
}

func Email(field, value, msg string, e Errors) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		e.Add(field, msg)
	}
}

func MinLength(field, value string, n int, msg string, e Errors) {
	if len(value) < n {
		e.Add(field, msg)
	}
}
