package form

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// Fixed parts attached to every submission alongside the field values.
const (
	localePart    = "locale"
	localeValue   = "en"
	htmlTypePart  = "html_type"
	htmlTypeValue = "simple"
)

// post sends the multipart submission: one part per declared field in
// declaration order, plus the locale and content-type markers. Any non-2xx
// response is a failure; the response body is never interpreted.
func (c *Controller) post(ctx context.Context, values map[string]string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, field := range c.doc.Fields {
		id := field.FieldID()
		if err := writer.WriteField(id, values[id]); err != nil {
			return fmt.Errorf("form: encode part %q: %w", id, err)
		}
	}
	if err := writer.WriteField(localePart, localeValue); err != nil {
		return fmt.Errorf("form: encode part %q: %w", localePart, err)
	}
	if err := writer.WriteField(htmlTypePart, htmlTypeValue); err != nil {
		return fmt.Errorf("form: encode part %q: %w", htmlTypePart, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("form: finalize request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.doc.SubmissionURL, &body)
	if err != nil {
		return fmt.Errorf("form: build submission request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("form: submit to %s: %w", c.doc.SubmissionURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("form: submission rejected with status %s", resp.Status)
	}
	return nil
}
