package view

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/goliatone/go-swagform/pkg/content"
	"github.com/goliatone/go-swagform/pkg/form"
)

// DefaultTitle is used when the hero copy yields no usable heading.
const DefaultTitle = "Swag"

var heroPolicy = bluemonday.UGCPolicy()

// Render builds the landing page for the document and the current form
// state. The result is a view-node tree; final HTML serialization is left
// to the host layer (or WriteHTML).
func Render(doc *content.FormDocument, snap form.Snapshot) (Page, error) {
	hero, err := renderHero(doc.Hero)
	if err != nil {
		return Page{}, err
	}

	fields := make([]Node, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		fields = append(fields, renderField(field, doc.Autofocus, snap))
	}
	fields = append(fields, renderSubmitButton(doc.SubmitLabels, snap.Status))

	formNode := El("form", A(
		"id", "swag-form",
		"class", "swag-form",
		"action", doc.SubmissionURL,
		"method", "post",
		"enctype", "multipart/form-data",
	), fields...)

	return Page{
		Title: pageTitle(doc.Hero),
		Lang:  "en",
		Body:  []Node{hero, formNode},
	}, nil
}

func renderHero(blocks []string) (Node, error) {
	children := make([]Node, 0, len(blocks))
	for _, block := range blocks {
		html, err := renderMarkdown(block)
		if err != nil {
			return Node{}, err
		}
		children = append(children, El("div", A("class", "hero-block"), RawHTML(html)))
	}
	return El("section", A("class", "hero"), children...), nil
}

// renderMarkdown converts one hero block to HTML and sanitizes the result
// before it can reach a raw node.
func renderMarkdown(block string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(block), &buf); err != nil {
		return "", fmt.Errorf("view: render hero markdown: %w", err)
	}
	return strings.TrimSpace(heroPolicy.Sanitize(buf.String())), nil
}

func renderField(field content.FieldSpec, autofocus string, snap form.Snapshot) Node {
	state := snap.Fields[field.FieldID()]

	switch f := field.(type) {
	case content.TextField:
		return renderTextField(f, state, autofocus == f.ID)
	case content.CheckboxField:
		return renderCheckboxField(f, state)
	default:
		// FieldSpec is sealed; the decoder only produces the two cases above.
		return Node{}
	}
}

func renderTextField(field content.TextField, state form.FieldState, autofocus bool) Node {
	input := A(
		"type", "text",
		"id", field.ID,
		"name", field.ID,
		"value", state.Value,
	)
	if autofocus {
		input = append(input, Attr{Key: "autofocus"})
	}
	input = appendErrorAttrs(input, field.ID, state)

	children := []Node{
		El("label", A("for", field.ID), Text(field.Title)),
		El("input", input),
	}
	if field.Description != "" {
		children = append(children, El("small", A("class", "field-description"), Text(field.Description)))
	}
	children = appendErrorNode(children, state)

	return El("div", A("class", fieldClass(field.Layout)), children...)
}

func renderCheckboxField(field content.CheckboxField, state form.FieldState) Node {
	input := A(
		"type", "checkbox",
		"id", field.ID,
		"name", field.ID,
		"value", form.CheckedValue,
	)
	if state.Value == form.CheckedValue {
		input = append(input, Attr{Key: "checked"})
	}
	input = appendErrorAttrs(input, field.ID, state)

	children := []Node{
		El("input", input),
		El("label", A("for", field.ID), Text(field.Description)),
	}
	children = appendErrorNode(children, state)

	return El("div", A("class", fieldClass(field.Layout)), children...)
}

func renderSubmitButton(labels content.SubmitLabels, status form.Status) Node {
	attrs := A("type", "submit", "class", "swag-submit")
	if status == form.StatusSubmitting {
		attrs = append(attrs, Attr{Key: "disabled"})
	}

	label := labels.Waiting
	switch status {
	case form.StatusSubmitting:
		label = labels.Submitting
	case form.StatusError:
		label = labels.Error
	case form.StatusSubmitted:
		label = labels.Submitted
	}
	return El("button", attrs, Text(label))
}

func appendErrorAttrs(attrs []Attr, id string, state form.FieldState) []Attr {
	if state.Error == nil {
		return attrs
	}
	return append(attrs,
		Attr{Key: "aria-invalid", Value: "true"},
		Attr{Key: "aria-describedby", Value: errorID(id)},
	)
}

func appendErrorNode(children []Node, state form.FieldState) []Node {
	if state.Error == nil {
		return children
	}
	return append(children, El("p", A(
		"id", errorID(state.Error.ID),
		"class", "field-error",
		"role", "alert",
	), Text(state.Error.Description)))
}

func errorID(fieldID string) string {
	return fieldID + "-error"
}

// fieldClass encodes the field's grid placement as class names the host
// stylesheet maps onto the 8-column grid.
func fieldClass(layout content.ColumnRange) string {
	return fmt.Sprintf("field col-start-%s col-end-%s", layout.Start, layout.End)
}

// pageTitle derives the page title from the first hero heading line.
func pageTitle(blocks []string) string {
	if len(blocks) == 0 {
		return DefaultTitle
	}
	line := blocks[0]
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(strings.TrimLeft(line, "# "))
	if line == "" {
		return DefaultTitle
	}
	return line
}
