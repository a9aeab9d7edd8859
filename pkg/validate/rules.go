// Package validate holds the per-field validation rules attached to decoded
// form fields and the composition rule used to evaluate them.
package validate

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-swagform/pkg/content"
)

// FieldError ties a validation failure to the field it belongs to.
// Description is the end-user message; ID matches the offending field so the
// error can be wired up for display and ARIA references. The zero value
// means the field is valid.
type FieldError struct {
	ID          string
	Description string
}

// Failed reports whether the error describes an actual failure.
func (e FieldError) Failed() bool {
	return e != FieldError{}
}

// Rule evaluates a field's current text value.
type Rule func(value string) FieldError

// EmailMessage is the error shown when a value is not a valid address.
const EmailMessage = "This value must be a valid email address."

// HTML5-style email address pattern.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Filled fails with message when the trimmed value is empty.
func Filled(id, message string) Rule {
	return func(value string) FieldError {
		if strings.TrimSpace(value) == "" {
			return FieldError{ID: id, Description: message}
		}
		return FieldError{}
	}
}

// Email fails when a non-empty value is not a valid email address. Empty
// values pass; pair with Filled when the field is also mandatory.
func Email(id string) Rule {
	return func(value string) FieldError {
		if value != "" && !emailPattern.MatchString(value) {
			return FieldError{ID: id, Description: EmailMessage}
		}
		return FieldError{}
	}
}

// All composes rules in order and returns the first failure, so a field with
// several rules reports the message of the earliest declared rule that
// rejects the value.
func All(rules ...Rule) Rule {
	return func(value string) FieldError {
		for _, rule := range rules {
			if err := rule(value); err.Failed() {
				return err
			}
		}
		return FieldError{}
	}
}

// RulesFor builds the composed rule declared on a text field.
func RulesFor(field content.TextField) Rule {
	rules := make([]Rule, 0, len(field.Validation))
	for _, spec := range field.Validation {
		switch spec.Kind {
		case content.ValidationEmail:
			rules = append(rules, Email(field.ID))
		case content.ValidationFilled:
			rules = append(rules, Filled(field.ID, spec.Message))
		}
	}
	return All(rules...)
}
