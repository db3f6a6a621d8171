// Package script wraps a generated statement body into a runnable file.
package script

import (
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/ivikasavnish/scriptgen/pkg/codegen"
)

const defaultTemplate = `set headless {{ .Options.Headless }}
set wait-for-selector-on-click {{ .Options.WaitForSelectorOnClick }}
{{ if .Options.WrapAsync -}}
(async () => {
{{ .Body }}})()
{{ else -}}
{{ .Body }}
{{- end }}`

var defaultTmpl = template.Must(template.New("script").Parse(defaultTemplate))

type data struct {
	Body    string
	Options codegen.Options
}

// Render wraps body, as produced by a generator configured with opts
func Render(body string, opts codegen.Options) (string, error) {
	return execute(defaultTmpl, body, opts)
}

// Template is a user supplied script layout. It sees .Body and .Options.
type Template struct {
	tmpl *template.Template
}

// Parse compiles a custom layout
func Parse(text string) (*Template, error) {
	tmpl, err := template.New("custom").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse script template")
	}
	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(body string, opts codegen.Options) (string, error) {
	return execute(t.tmpl, body, opts)
}

func execute(tmpl *template.Template, body string, opts codegen.Options) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data{Body: body, Options: opts}); err != nil {
		return "", errors.Wrap(err, "failed to render script")
	}
	return buf.String(), nil
}
