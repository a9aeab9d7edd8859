package form_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-swagform/pkg/form"
)

type capturedSubmission struct {
	values    map[string]string
	requestID string
}

func submissionServer(t *testing.T, status int, captured *capturedSubmission) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		captured.values = make(map[string]string)
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				captured.values[key] = values[0]
			}
		}
		captured.requestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(status)
	}))
}

func fillValid(ctrl *form.Controller) {
	ctrl.Input("FIRSTNAME", "Ann")
	ctrl.Input("EMAIL", "a@b.com")
	ctrl.Input("TERMS", form.CheckedValue)
}

func TestController_SubmitSendsMultipart(t *testing.T) {
	var captured capturedSubmission
	server := submissionServer(t, http.StatusNoContent, &captured)
	defer server.Close()

	ctrl := form.New(testDoc(server.URL))
	fillValid(ctrl)

	if err := <-ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := map[string]string{
		"FIRSTNAME": "Ann",
		"EMAIL":     "a@b.com",
		"TERMS":     form.CheckedValue,
		"locale":    "en",
		"html_type": "simple",
	}
	for key, value := range want {
		if captured.values[key] != value {
			t.Fatalf("part %s: want %q got %q (all: %#v)", key, value, captured.values[key], captured.values)
		}
	}
	if len(captured.values) != len(want) {
		t.Fatalf("unexpected extra parts: %#v", captured.values)
	}
	if captured.requestID == "" {
		t.Fatalf("submission should carry a request id")
	}

	snap := ctrl.Snapshot()
	if snap.Status != form.StatusSubmitted {
		t.Fatalf("status should be submitted, got %v", snap.Status)
	}
	for id, field := range snap.Fields {
		if field.Value != "" || field.Error != nil {
			t.Fatalf("field %s should be reset after success: %#v", id, field)
		}
	}
}

func TestController_FailurePreservesValues(t *testing.T) {
	var captured capturedSubmission
	server := submissionServer(t, http.StatusInternalServerError, &captured)
	defer server.Close()

	ctrl := form.New(testDoc(server.URL))
	fillValid(ctrl)

	if err := <-ctrl.Submit(context.Background()); err == nil {
		t.Fatalf("expected submission failure")
	}

	snap := ctrl.Snapshot()
	if snap.Status != form.StatusError {
		t.Fatalf("status should be error, got %v", snap.Status)
	}
	if snap.Fields["FIRSTNAME"].Value != "Ann" {
		t.Fatalf("failure should preserve entered values: %#v", snap.Fields)
	}
}

func TestController_RetryAfterFailure(t *testing.T) {
	var captured capturedSubmission
	failing := submissionServer(t, http.StatusBadGateway, &captured)
	defer failing.Close()

	ctrl := form.New(testDoc(failing.URL))
	fillValid(ctrl)

	if err := <-ctrl.Submit(context.Background()); err == nil {
		t.Fatalf("expected first submission to fail")
	}
	if err := <-ctrl.Submit(context.Background()); err == nil {
		t.Fatalf("expected retry to fail against the same endpoint")
	}
	if snap := ctrl.Snapshot(); snap.Status != form.StatusError {
		t.Fatalf("status should remain error, got %v", snap.Status)
	}
}

func TestController_SubmitGatedOnValidation(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	ctrl := form.New(testDoc(server.URL))

	err := <-ctrl.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("no request should be dispatched when gated")
	}

	snap := ctrl.Snapshot()
	if snap.Status != form.StatusWaiting {
		t.Fatalf("status should stay waiting, got %v", snap.Status)
	}
	if snap.Fields["EMAIL"].Error == nil {
		t.Fatalf("gating should surface field errors: %#v", snap.Fields)
	}
}

func TestController_SecondSubmitWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctrl := form.New(testDoc(server.URL))
	fillValid(ctrl)

	first := ctrl.Submit(context.Background())

	err := <-ctrl.Submit(context.Background())
	if !errors.Is(err, form.ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-first; err != nil {
		t.Fatalf("first submission should succeed: %v", err)
	}
}

type focusRecorder struct {
	id string
}

func (f *focusRecorder) Focus(id string) error {
	f.id = id
	return nil
}

func TestController_InitialFocus(t *testing.T) {
	recorder := &focusRecorder{}
	form.New(testDoc("/submit"), form.WithFocuser(recorder))
	if recorder.id != "FIRSTNAME" {
		t.Fatalf("focus should target the autofocus field, got %q", recorder.id)
	}
}

func TestController_InitialFocusFallback(t *testing.T) {
	doc := testDoc("/submit")
	doc.Autofocus = ""

	recorder := &focusRecorder{}
	form.New(doc, form.WithFocuser(recorder))
	if recorder.id != form.DefaultFocusID {
		t.Fatalf("focus should fall back to %q, got %q", form.DefaultFocusID, recorder.id)
	}
}

type failingFocuser struct{}

func (failingFocuser) Focus(string) error { return errors.New("no such element") }

func TestController_FocusFailureIsSwallowed(t *testing.T) {
	ctrl := form.New(testDoc("/submit"), form.WithFocuser(failingFocuser{}))
	if snap := ctrl.Snapshot(); snap.Status != form.StatusWaiting {
		t.Fatalf("focus failure must not affect state, got %v", snap.Status)
	}
}
