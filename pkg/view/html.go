package view

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var voidElements = map[string]struct{}{
	"br":    {},
	"hr":    {},
	"img":   {},
	"input": {},
	"link":  {},
	"meta":  {},
}

// WriteHTML serializes view nodes. Text nodes are escaped, raw nodes are
// emitted verbatim.
func WriteHTML(w io.Writer, nodes ...Node) error {
	for _, node := range nodes {
		if err := writeNode(w, node); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, node Node) error {
	if node.Tag == "" {
		text := node.Text
		if !node.Raw {
			text = html.EscapeString(text)
		}
		_, err := io.WriteString(w, text)
		return err
	}

	var builder strings.Builder
	builder.WriteByte('<')
	builder.WriteString(node.Tag)
	for _, attr := range node.Attrs {
		builder.WriteByte(' ')
		builder.WriteString(attr.Key)
		if attr.Value != "" {
			builder.WriteString(`="`)
			builder.WriteString(html.EscapeString(attr.Value))
			builder.WriteByte('"')
		}
	}
	builder.WriteByte('>')
	if _, err := io.WriteString(w, builder.String()); err != nil {
		return err
	}

	if _, void := voidElements[node.Tag]; void {
		return nil
	}

	if err := WriteHTML(w, node.Children...); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>", node.Tag)
	return err
}

const pageShell = `<!DOCTYPE html>
<html lang="{{ lang }}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ title }}</title>
</head>
<body>
{{ body|safe }}
</body>
</html>
`

var (
	shellOnce sync.Once
	shellTpl  *pongo2.Template
	shellErr  error
)

// HTML renders the complete page document: the serialized body wrapped in
// the page shell template.
func (p Page) HTML() (string, error) {
	shellOnce.Do(func() {
		shellTpl, shellErr = pongo2.FromString(pageShell)
	})
	if shellErr != nil {
		return "", fmt.Errorf("view: parse page shell: %w", shellErr)
	}

	var body strings.Builder
	if err := WriteHTML(&body, p.Body...); err != nil {
		return "", fmt.Errorf("view: serialize body: %w", err)
	}

	lang := p.Lang
	if lang == "" {
		lang = "en"
	}
	out, err := shellTpl.Execute(pongo2.Context{
		"lang":  lang,
		"title": p.Title,
		"body":  body.String(),
	})
	if err != nil {
		return "", fmt.Errorf("view: render page shell: %w", err)
	}
	return out, nil
}
