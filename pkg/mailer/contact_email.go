package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContactDetails is what the notification email reports about a submission
type ContactDetails struct {
	Name    string
	Email   string
	Company string
	Message string
}

var contactTemplate = template.Must(template.New("contact").Parse(`<html>
    <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
        <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8fafc; border-radius: 8px;">
            <h2 style="color: #0F172A; border-bottom: 2px solid #3B82F6; padding-bottom: 10px;">New Contact Form Submission</h2>
            <div style="background-color: white; padding: 20px; border-radius: 6px; margin-top: 20px;">
                <p><strong style="color: #0F172A;">Name:</strong> {{.Name}}</p>
                <p><strong style="color: #0F172A;">Email:</strong> {{.Email}}</p>
                <p><strong style="color: #0F172A;">Company:</strong> {{.Company}}</p>
                <p><strong style="color: #0F172A;">Message:</strong></p>
                <div style="background-color: #f8fafc; padding: 15px; border-left: 4px solid #3B82F6; margin-top: 10px;">
                    {{.Message}}
                </div>
            </div>
            <p style="margin-top: 20px; color: #64748B; font-size: 12px;">Submitted via MBS NYC Contact Form</p>
        </div>
    </body>
</html>`))

// ContactSubject is the subject line of the notification email
func ContactSubject(company string) string {
	return fmt.Sprintf("New Contact Form Submission - %s", company)
}

// NewContactMessage renders the notification email for one submission.
// Field values are HTML-escaped.
func NewContactMessage(from, to string, details ContactDetails) (Message, error) {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, details); err != nil {
		return Message{}, fmt.Errorf("failed to render contact email: %w", err)
	}

	return Message{
		From:    from,
		To:      []string{to},
		Subject: ContactSubject(details.Company),
		HTML:    buf.String(),
	}, nil
}
