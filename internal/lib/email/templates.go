package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateFormCreated corresponds to templates/form_created.html
	TemplateFormCreated Template = "form_created"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates are parsed once at package init.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RenderTemplate executes the named template with data.
func RenderTemplate(name Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}
