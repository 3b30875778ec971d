package notifications

var commonTemplates = map[string]string{
	`default`: `{{.Message}}`,

	`detailed`: `
{{- if .Message -}}{{.Title}}: {{.Message}}{{- else -}}{{.Title}}{{- end -}}
{{- with .Host}} ({{.}}){{end -}}`,

	`upper`: `{{ToUpper .Title}}{{with .Message}}: {{.}}{{end}}`,
}
