package form_test

import (
	"testing"

	"github.com/goliatone/go-swagform/pkg/content"
	"github.com/goliatone/go-swagform/pkg/form"
	"github.com/goliatone/go-swagform/pkg/validate"
)

func testDoc(url string) *content.FormDocument {
	return &content.FormDocument{
		Hero:          []string{"# Swag"},
		SubmissionURL: url,
		SubmitLabels: content.SubmitLabels{
			Waiting:    "Send",
			Submitting: "Sending",
			Error:      "Failed",
			Submitted:  "Done",
		},
		Autofocus: "FIRSTNAME",
		Fields: []content.FieldSpec{
			content.TextField{
				ID:    "FIRSTNAME",
				Title: "First name",
				Validation: []content.ValidationSpec{
					{Kind: content.ValidationFilled, Message: "Name is required"},
				},
			},
			content.TextField{
				ID:    "EMAIL",
				Title: "Email",
				Validation: []content.ValidationSpec{
					{Kind: content.ValidationFilled, Message: "Email is required"},
					{Kind: content.ValidationEmail},
				},
			},
			content.CheckboxField{
				ID:              "TERMS",
				Description:     "I agree to the terms",
				RequiredMessage: "Please accept the terms",
			},
		},
	}
}

func TestState_InputThenBlurLeavesOthersUntouched(t *testing.T) {
	state := form.NewState(testDoc("/submit"))

	state.Input("FIRSTNAME", "Ann")
	state.Blur("FIRSTNAME")

	field, ok := state.Field("FIRSTNAME")
	if !ok {
		t.Fatalf("FIRSTNAME missing")
	}
	if field.Value != "Ann" || field.Error != nil {
		t.Fatalf("unexpected FIRSTNAME state: %#v", field)
	}

	for _, id := range []string{"EMAIL", "TERMS"} {
		other, ok := state.Field(id)
		if !ok {
			t.Fatalf("%s missing", id)
		}
		if other.Value != "" || other.Error != nil {
			t.Fatalf("%s should be untouched: %#v", id, other)
		}
	}

	if state.Status() != form.StatusWaiting {
		t.Fatalf("status should stay waiting, got %v", state.Status())
	}
}

func TestState_InputDoesNotTouchError(t *testing.T) {
	state := form.NewState(testDoc("/submit"))

	state.Input("EMAIL", "nope")
	state.Blur("EMAIL")

	field, _ := state.Field("EMAIL")
	if field.Error == nil || field.Error.Description != validate.EmailMessage {
		t.Fatalf("blur should record the email error: %#v", field.Error)
	}

	state.Input("EMAIL", "a@b.com")
	field, _ = state.Field("EMAIL")
	if field.Error == nil {
		t.Fatalf("input alone should not clear the error")
	}

	state.Blur("EMAIL")
	field, _ = state.Field("EMAIL")
	if field.Error != nil {
		t.Fatalf("blur should clear the error once valid: %#v", field.Error)
	}
}

func TestState_BlurValidatesCheckbox(t *testing.T) {
	state := form.NewState(testDoc("/submit"))

	state.Blur("TERMS")
	field, _ := state.Field("TERMS")
	if field.Error == nil || field.Error.Description != "Please accept the terms" {
		t.Fatalf("unchecked required checkbox should error on blur: %#v", field.Error)
	}
	if field.Error.ID != "TERMS" {
		t.Fatalf("error should reference the field id: %#v", field.Error)
	}

	state.Input("TERMS", form.CheckedValue)
	state.Blur("TERMS")
	field, _ = state.Field("TERMS")
	if field.Error != nil {
		t.Fatalf("checked checkbox should not error: %#v", field.Error)
	}
}

func TestState_UnknownFieldIgnored(t *testing.T) {
	state := form.NewState(testDoc("/submit"))
	state.Input("NOPE", "x")
	state.Blur("NOPE")
	if _, ok := state.Field("NOPE"); ok {
		t.Fatalf("unknown field should not appear in state")
	}
}

func TestState_Validate(t *testing.T) {
	state := form.NewState(testDoc("/submit"))

	if state.Validate() {
		t.Fatalf("empty form should not validate")
	}
	for id, want := range map[string]string{
		"FIRSTNAME": "Name is required",
		"EMAIL":     "Email is required",
		"TERMS":     "Please accept the terms",
	} {
		field, _ := state.Field(id)
		if field.Error == nil || field.Error.Description != want {
			t.Fatalf("%s error mismatch: %#v", id, field.Error)
		}
	}

	state.Input("FIRSTNAME", "Ann")
	state.Input("EMAIL", "a@b.com")
	state.Input("TERMS", form.CheckedValue)

	if !state.Validate() {
		t.Fatalf("filled form should validate")
	}
	for _, id := range []string{"FIRSTNAME", "EMAIL", "TERMS"} {
		field, _ := state.Field(id)
		if field.Error != nil {
			t.Fatalf("%s should have no error after revalidation: %#v", id, field.Error)
		}
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	state := form.NewState(testDoc("/submit"))
	state.Input("FIRSTNAME", "Ann")

	snap := state.Snapshot()
	snap.Fields["FIRSTNAME"] = form.FieldState{Value: "changed"}

	field, _ := state.Field("FIRSTNAME")
	if field.Value != "Ann" {
		t.Fatalf("mutating a snapshot must not touch live state: %#v", field)
	}
}
