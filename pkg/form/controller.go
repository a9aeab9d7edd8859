package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/goliatone/go-swagform/pkg/content"
)

// DefaultFocusID is the field focused on load when the document does not
// resolve an autofocus target.
const DefaultFocusID = "FIRSTNAME"

var (
	// ErrSubmitInFlight is reported when Submit is called while an earlier
	// submission is still outstanding.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrInvalid is reported when Submit is gated by failing validators.
	ErrInvalid = errors.New("form: one or more fields failed validation")
)

// Focuser receives the one-time focus request fired at initialization.
// Implementations bridge to whatever UI layer hosts the form.
type Focuser interface {
	Focus(id string) error
}

// Controller owns the form state for one decoded document. Every mutation
// goes through the controller, so callers never share the underlying State.
type Controller struct {
	mu    sync.Mutex
	state *State

	doc    *content.FormDocument
	client *http.Client
	logger *slog.Logger
	focus  Focuser
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient overrides the client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger attaches a structured logger. Without one the controller stays
// silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFocuser registers the sink for the initial focus request.
func WithFocuser(focus Focuser) Option {
	return func(c *Controller) {
		c.focus = focus
	}
}

// New builds a controller for the document and fires the one-time focus
// request. A failed focus is logged and otherwise ignored.
func New(doc *content.FormDocument, opts ...Option) *Controller {
	c := &Controller{
		state:  NewState(doc),
		doc:    doc,
		client: http.DefaultClient,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.focus != nil {
		id := c.doc.Autofocus
		if id == "" {
			id = DefaultFocusID
		}
		if err := c.focus.Focus(id); err != nil {
			c.logger.Debug("initial focus request failed", "field", id, "error", err)
		}
	}

	return c
}

// Input records a new value for the field.
func (c *Controller) Input(id, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Input(id, value)
}

// Blur re-validates the field that just lost focus.
func (c *Controller) Blur(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Blur(id)
}

// Snapshot returns a copy of the current form state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// Submit validates the form and, when everything passes, dispatches the
// multipart POST in the background. The returned channel delivers exactly
// one value: the submission outcome, or ErrInvalid / ErrSubmitInFlight when
// the request was never dispatched. The state transition to StatusSubmitted
// or StatusError happens before the channel fires.
func (c *Controller) Submit(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	if c.state.Status() == StatusSubmitting {
		c.mu.Unlock()
		done <- ErrSubmitInFlight
		return done
	}
	if !c.state.Validate() {
		c.mu.Unlock()
		done <- ErrInvalid
		return done
	}
	c.state.beginSubmit()
	values := c.state.values()
	c.mu.Unlock()

	go func() {
		err := c.post(ctx, values)

		c.mu.Lock()
		c.state.complete(err)
		c.mu.Unlock()

		if err != nil {
			c.logger.Error("swag form submission failed", "url", c.doc.SubmissionURL, "error", err)
		} else {
			c.logger.Info("swag form submitted", "url", c.doc.SubmissionURL)
		}
		done <- err
	}()

	return done
}
