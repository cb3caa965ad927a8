package email

import "strconv"

// SendFormCreatedEmail tells the owner that a new form was created.
func (c *Client) SendFormCreatedEmail(to, formName string, formID int64) error {
	data := map[string]string{
		"FormName": formName,
		"FormID":   strconv.FormatInt(formID, 10),
	}

	return c.SendEmail(
		to,
		"Your form \""+formName+"\" is ready",
		TemplateFormCreated,
		data,
	)
}
