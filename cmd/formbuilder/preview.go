package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/form-builder/internal/lib/email"
)

var previewCmd = &cobra.Command{
	Use:   "email-preview [template]",
	Short: "Render a notification email with sample data",
	Long: `email-preview writes the HTML of a notification email, filled with
sample data, to stdout. Without an argument it lists the templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, name := range email.PreviewTemplates() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	body, err := email.Preview(email.Template(args[0]))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, body)
	return err
}
