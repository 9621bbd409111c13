package tagging

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompt.tmpl
var promptTmpl string

var promptTemplate = template.Must(template.New("tags").Parse(promptTmpl))

// BuildPrompt renders the tag-generation prompt for one book. The template
// is deterministic so dry-run previews are reproducible.
func BuildPrompt(title, description string) string {
	var buf bytes.Buffer
	data := struct {
		Title       string
		Description string
	}{Title: title, Description: description}
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return promptTmpl
	}
	return buf.String()
}
