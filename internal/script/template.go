package script

import (
	"bytes"
	"fmt"
	"text/template"
)

// funcs are available to every template passed to Render.
//
//	{{ lit .Name }}  renders a quoted string literal
//	{{ esc .Name }}  renders escaped text for use inside an existing literal
var funcs = template.FuncMap{
	"lit": Literal,
	"esc": Escape,
}

// Render executes tmpl against data and returns the generated script body.
// Data fields are inserted verbatim unless piped through lit or esc, so
// templates must route every caller-supplied string through one of them.
func Render(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse script template %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render script template %q: %w", name, err)
	}
	return buf.String(), nil
}
