package email

import (
	"sort"

	"github.com/pkg/errors"
)

// PreviewData contains sample template data for rendering every template
// outside a real send.
var PreviewData = map[Template]map[string]string{
	TemplateFormCreated: {
		"FormName": "Customer Feedback",
		"FormID":   "42",
	},
}

// PreviewTemplates lists the templates that can be previewed, sorted.
func PreviewTemplates() []Template {
	names := make([]Template, 0, len(PreviewData))
	for name := range PreviewData {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Preview renders a template with its sample data.
func Preview(name Template) (string, error) {
	data, ok := PreviewData[name]
	if !ok {
		return "", errors.Errorf("unknown email template %q", name)
	}
	return RenderTemplate(name, data)
}
