package model

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors. These are business-rule rejections, never availability
// problems, so callers must not retry them against another store.
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalid         = errors.New("invalid input")
	ErrDefaultTemplate = errors.New("cannot delete default templates")
)

// IsDomainError reports whether err is a business-rule rejection.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalid) ||
		errors.Is(err, ErrDefaultTemplate)
}

// ValidationError represents a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func (e ValidationErrors) Unwrap() error {
	return ErrInvalid
}

// errs collects validation failures; err returns nil when none were added.
type errs ValidationErrors

func (v *errs) add(field, msg string) {
	*v = append(*v, ValidationError{Field: field, Message: msg})
}

func (v *errs) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

// reference rejects a set but empty id; nil means "no reference".
func (v *errs) reference(field string, id *string) {
	if id != nil && strings.TrimSpace(*id) == "" {
		v.add(field, "must not be empty")
	}
}

func (v errs) err() error {
	if len(v) == 0 {
		return nil
	}
	return ValidationErrors(v)
}
