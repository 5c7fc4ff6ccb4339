package console

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// expandTemplate renders a template string against the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func expandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

const regionTemplate = `{{ .Region }}: {{ .Phase }} (wave {{ .Wave }}, danger {{ .Danger }})
  intensity {{ printf "%.2f" .Intensity }}, {{ printf "%.0f" .RemainingSeconds }}s remaining
  lanterns {{ .Lanterns }}, endangered {{ len .Endangered }}, rescued {{ len .Rescued }} (totals {{ .TotalEndangered }}/{{ .TotalRescued }})`

const sessionTemplate = `{{ .ID }} in {{ .Region }}: {{ .Status }} ({{ len .Players }}/{{ .MaxPlayers }} players{{ if .ItID }}, it: {{ .ItID }}{{ end }})
{{- range .Players }}
  {{ .Name }} ({{ .ID }}){{ if .IsIt }} [it]{{ end }}: score {{ .Score }}, tags {{ .TagCount }}, tagged {{ .WasTaggedCount }}{{ end }}`
