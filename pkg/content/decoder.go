package content

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages surfaced for malformed field declarations. They are appended to
// the positional prefix derived from the YAML node that failed to decode.
const (
	msgFieldType      = "The 'type' field must be either 'text' or 'checkbox'"
	msgRequireChecked = "requireChecked must be either false or a string containing an error message"
	msgColumn         = "This value must be a number between 1 and 8, or 'first', 'last' or 'middle'."
	msgValidation     = "Invalid validation test. Only 'email' and 'filled' are available at the moment."
)

// Decode parses a landing-page content document into a FormDocument. Any
// shape error (missing key, wrong node kind, unknown field type) fails with
// a message naming the offending key or value and its position in the
// document.
func Decode(data []byte) (*FormDocument, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("content: document is empty")
	}
	return decodeDocument(root.Content[0])
}

// DecodeFrom reads the reader to completion and decodes it like Decode.
func DecodeFrom(r io.Reader) (*FormDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("content: read document: %w", err)
	}
	return Decode(data)
}

func decodeDocument(node *yaml.Node) (*FormDocument, error) {
	hero, err := requireEntry(node, "", "hero")
	if err != nil {
		return nil, err
	}
	messageNode, err := requireEntry(hero, "hero", "message")
	if err != nil {
		return nil, err
	}
	message, err := stringValue(messageNode, "hero.message")
	if err != nil {
		return nil, err
	}

	form, err := requireEntry(node, "", "form")
	if err != nil {
		return nil, err
	}

	doc := &FormDocument{Hero: splitBlocks(message)}

	if doc.SubmissionURL, err = requireString(form, "form", "submission_url"); err != nil {
		return nil, err
	}
	if doc.SubmitLabels, err = decodeSubmitLabels(form); err != nil {
		return nil, err
	}
	if doc.Autofocus, err = requireString(form, "form", "autofocus"); err != nil {
		return nil, err
	}

	fieldsNode, err := requireEntry(form, "form", "fields")
	if err != nil {
		return nil, err
	}
	if fieldsNode.Kind != yaml.SequenceNode {
		return nil, nodeErr(fieldsNode, "the 'form.fields' field must be a list")
	}

	seen := make(map[string]struct{}, len(fieldsNode.Content))
	for _, entry := range fieldsNode.Content {
		field, err := decodeField(entry)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[field.FieldID()]; dup {
			return nil, nodeErr(entry, fmt.Sprintf("duplicate field id %q", field.FieldID()))
		}
		seen[field.FieldID()] = struct{}{}
		doc.Fields = append(doc.Fields, field)
	}

	if _, ok := seen[doc.Autofocus]; !ok {
		return nil, nodeErr(form, fmt.Sprintf("the 'form.autofocus' value %q does not match any declared field id", doc.Autofocus))
	}

	return doc, nil
}

func decodeSubmitLabels(form *yaml.Node) (SubmitLabels, error) {
	button, err := requireEntry(form, "form", "submit_button")
	if err != nil {
		return SubmitLabels{}, err
	}

	var labels SubmitLabels
	for _, entry := range []struct {
		key  string
		dest *string
	}{
		{"waiting", &labels.Waiting},
		{"submitting", &labels.Submitting},
		{"error", &labels.Error},
		{"submitted", &labels.Submitted},
	} {
		value, err := requireString(button, "form.submit_button", entry.key)
		if err != nil {
			return SubmitLabels{}, err
		}
		*entry.dest = value
	}
	return labels, nil
}

func decodeField(node *yaml.Node) (FieldSpec, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeErr(node, "each entry in 'form.fields' must be a mapping")
	}

	typeNode, err := requireEntry(node, "form.fields[]", "type")
	if err != nil {
		return nil, err
	}
	if !isScalar(typeNode, "!!str") {
		return nil, nodeErr(typeNode, msgFieldType)
	}

	switch typeNode.Value {
	case "text":
		return decodeTextField(node)
	case "checkbox":
		return decodeCheckboxField(node)
	default:
		return nil, nodeErr(typeNode, msgFieldType)
	}
}

func decodeTextField(node *yaml.Node) (FieldSpec, error) {
	var field TextField
	var err error

	if field.ID, err = requireString(node, "form.fields[]", "id"); err != nil {
		return nil, err
	}
	if field.Title, err = requireString(node, "form.fields[]", "title"); err != nil {
		return nil, err
	}
	if field.Layout, err = decodeColumns(node); err != nil {
		return nil, err
	}
	if desc, ok := mapEntry(node, "description"); ok {
		if field.Description, err = stringValue(desc, "description"); err != nil {
			return nil, err
		}
	}

	rules, err := requireEntry(node, "form.fields[]", "validation")
	if err != nil {
		return nil, err
	}
	if rules.Kind != yaml.SequenceNode {
		return nil, nodeErr(rules, "the 'validation' field must be a list")
	}
	for _, entry := range rules.Content {
		spec, err := decodeValidation(entry)
		if err != nil {
			return nil, err
		}
		field.Validation = append(field.Validation, spec)
	}

	return field, nil
}

func decodeCheckboxField(node *yaml.Node) (FieldSpec, error) {
	var field CheckboxField
	var err error

	if field.ID, err = requireString(node, "form.fields[]", "id"); err != nil {
		return nil, err
	}
	if field.Layout, err = decodeColumns(node); err != nil {
		return nil, err
	}
	if field.Description, err = requireString(node, "form.fields[]", "description"); err != nil {
		return nil, err
	}

	if required, ok := mapEntry(node, "require_checked"); ok {
		switch {
		case isScalar(required, "!!str"):
			field.RequiredMessage = required.Value
		case isScalar(required, "!!bool") && required.Value == "false":
			// not required
		default:
			return nil, nodeErr(required, msgRequireChecked)
		}
	}

	return field, nil
}

func decodeColumns(node *yaml.Node) (ColumnRange, error) {
	start, err := requireEntry(node, "form.fields[]", "column_start")
	if err != nil {
		return ColumnRange{}, err
	}
	end, err := requireEntry(node, "form.fields[]", "column_end")
	if err != nil {
		return ColumnRange{}, err
	}

	var columns ColumnRange
	if columns.Start, err = decodeColumn(start); err != nil {
		return ColumnRange{}, err
	}
	if columns.End, err = decodeColumn(end); err != nil {
		return ColumnRange{}, err
	}
	return columns, nil
}

func decodeColumn(node *yaml.Node) (ColumnPosition, error) {
	if node.Kind == yaml.ScalarNode {
		switch node.Tag {
		case "!!int":
			if v, err := strconv.Atoi(node.Value); err == nil && v >= 1 && v <= 8 {
				return ColumnPosition(v), nil
			}
		case "!!str":
			switch node.Value {
			case "first":
				return ColumnFirst, nil
			case "middle":
				return ColumnMiddle, nil
			case "last":
				return ColumnLast, nil
			}
		}
	}
	return 0, nodeErr(node, msgColumn)
}

func decodeValidation(node *yaml.Node) (ValidationSpec, error) {
	if isScalar(node, "!!str") && node.Value == ValidationEmail {
		return ValidationSpec{Kind: ValidationEmail}, nil
	}

	if node.Kind == yaml.MappingNode {
		if filled, ok := mapEntry(node, ValidationFilled); ok && filled.Kind == yaml.MappingNode {
			if desc, ok := mapEntry(filled, "description"); ok && isScalar(desc, "!!str") {
				return ValidationSpec{Kind: ValidationFilled, Message: desc.Value}, nil
			}
		}
	}

	return ValidationSpec{}, nodeErr(node, msgValidation)
}

// mapEntry returns the value node stored under key in a mapping node.
func mapEntry(node *yaml.Node, key string) (*yaml.Node, bool) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1], true
		}
	}
	return nil, false
}

func requireEntry(node *yaml.Node, path, key string) (*yaml.Node, error) {
	child, ok := mapEntry(node, key)
	if !ok {
		return nil, nodeErr(node, fmt.Sprintf("missing required field '%s'", joinKey(path, key)))
	}
	return child, nil
}

func requireString(node *yaml.Node, path, key string) (string, error) {
	child, err := requireEntry(node, path, key)
	if err != nil {
		return "", err
	}
	return stringValue(child, joinKey(path, key))
}

func stringValue(node *yaml.Node, path string) (string, error) {
	if !isScalar(node, "!!str") {
		return "", nodeErr(node, fmt.Sprintf("the '%s' field must be a string", path))
	}
	return node.Value, nil
}

func isScalar(node *yaml.Node, tag string) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.Tag == tag
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func nodeErr(node *yaml.Node, msg string) error {
	if node == nil {
		return fmt.Errorf("content: %s", msg)
	}
	return fmt.Errorf("content: line %d, column %d: %s", node.Line, node.Column, msg)
}

// splitBlocks breaks hero copy into markdown blocks on blank lines,
// preserving declaration order.
func splitBlocks(message string) []string {
	var blocks []string
	for _, block := range strings.Split(message, "\n\n") {
		if trimmed := strings.TrimSpace(block); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}
