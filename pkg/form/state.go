// Package form holds the client-side interaction state of a decoded swag
// form: per-field values and errors, the submission lifecycle, and the
// multipart submission itself.
package form

import (
	"github.com/goliatone/go-swagform/pkg/content"
	"github.com/goliatone/go-swagform/pkg/validate"
)

// Status is the end-user-visible state of the form's submit action.
type Status int

const (
	StatusWaiting Status = iota
	StatusSubmitting
	StatusError
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusSubmitting:
		return "submitting"
	case StatusError:
		return "error"
	case StatusSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// CheckedValue is the value a checked checkbox field reports.
const CheckedValue = "true"

// FieldState is the interaction state of a single field.
type FieldState struct {
	Value string
	Error *validate.FieldError
}

// Snapshot is a point-in-time copy of the whole form state, safe to hand to
// renderers while the live state keeps mutating.
type Snapshot struct {
	Status Status
	Fields map[string]FieldState
}

// State tracks field values and errors for one decoded document. All fields
// start empty with no errors and the form starts in StatusWaiting. State is
// not safe for concurrent use; Controller funnels every mutation through a
// single owner.
type State struct {
	doc    *content.FormDocument
	fields map[string]FieldState
	status Status
}

// NewState seeds empty state for every field the document declares.
func NewState(doc *content.FormDocument) *State {
	fields := make(map[string]FieldState, len(doc.Fields))
	for _, field := range doc.Fields {
		fields[field.FieldID()] = FieldState{}
	}
	return &State{doc: doc, fields: fields}
}

// Status returns the current submission status.
func (s *State) Status() Status {
	return s.status
}

// Field returns the state of one field.
func (s *State) Field(id string) (FieldState, bool) {
	state, ok := s.fields[id]
	return state, ok
}

// Input records a new value for the field. The field's error state is left
// untouched; errors update on blur and on submit.
func (s *State) Input(id, value string) {
	state, ok := s.fields[id]
	if !ok {
		return
	}
	state.Value = value
	s.fields[id] = state
}

// Blur re-runs the field's validators against its current value, setting or
// clearing the inline error accordingly.
func (s *State) Blur(id string) {
	state, ok := s.fields[id]
	if !ok {
		return
	}
	field, ok := s.doc.Field(id)
	if !ok {
		return
	}
	state.Error = validateField(field, state.Value)
	s.fields[id] = state
}

// Validate runs every field's validators, records the failures inline and
// reports whether the whole form is valid.
func (s *State) Validate() bool {
	valid := true
	for _, field := range s.doc.Fields {
		state := s.fields[field.FieldID()]
		state.Error = validateField(field, state.Value)
		if state.Error != nil {
			valid = false
		}
		s.fields[field.FieldID()] = state
	}
	return valid
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	fields := make(map[string]FieldState, len(s.fields))
	for id, state := range s.fields {
		if state.Error != nil {
			err := *state.Error
			state.Error = &err
		}
		fields[id] = state
	}
	return Snapshot{Status: s.status, Fields: fields}
}

func (s *State) beginSubmit() {
	s.status = StatusSubmitting
}

// complete applies the submission outcome: success clears every value and
// error and shows the confirmation state, failure preserves what the user
// typed so they can retry.
func (s *State) complete(err error) {
	if err != nil {
		s.status = StatusError
		return
	}
	s.status = StatusSubmitted
	for id := range s.fields {
		s.fields[id] = FieldState{}
	}
}

// values snapshots the current per-field values keyed by field id.
func (s *State) values() map[string]string {
	out := make(map[string]string, len(s.fields))
	for id, state := range s.fields {
		out[id] = state.Value
	}
	return out
}

func validateField(field content.FieldSpec, value string) *validate.FieldError {
	switch f := field.(type) {
	case content.TextField:
		if err := validate.RulesFor(f)(value); err.Failed() {
			return &err
		}
	case content.CheckboxField:
		if f.RequiredMessage != "" && value != CheckedValue {
			return &validate.FieldError{ID: f.ID, Description: f.RequiredMessage}
		}
	}
	return nil
}
