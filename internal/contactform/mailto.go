package contactform

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"go.uber.org/zap"
)

// MailtoOpeningMessage is shown once the mail client has been asked to open
const MailtoOpeningMessage = "Opening your email client..."

// Navigator opens a URI, e.g. by replacing the current page location
type Navigator interface {
	Navigate(uri string)
}

// NavigatorFunc adapts a function to the Navigator interface
type NavigatorFunc func(uri string)

// Navigate calls f(uri)
func (f NavigatorFunc) Navigate(uri string) {
	f(uri)
}

// MailtoSubmitter hands the request to the visitor's mail client.
// Delivery is not observable, so Submit never fails.
type MailtoSubmitter struct {
	address   string
	navigator Navigator
}

// NewMailtoSubmitter creates a submitter addressing every message to address
func NewMailtoSubmitter(address string, navigator Navigator) *MailtoSubmitter {
	return &MailtoSubmitter{
		address:   address,
		navigator: navigator,
	}
}

// Submit builds the mailto URI and navigates to it
func (s *MailtoSubmitter) Submit(_ context.Context, req models.ContactRequest) error {
	uri := BuildMailtoURI(s.address, req)
	s.navigator.Navigate(uri)

	metrics.ContactFormAttempts.WithLabelValues(config.DeliveryMailto, "success").Inc()
	logger.Debug("Opened mail client for contact request", zap.String("to", s.address))
	return nil
}

// SuccessMessage implements SuccessMessager
func (s *MailtoSubmitter) SuccessMessage() string {
	return MailtoOpeningMessage
}

// MailtoSubject returns the subject line for a contact request
func MailtoSubject(req models.ContactRequest) string {
	return fmt.Sprintf("Contact Request from %s - %s", req.Name, req.Company)
}

// MailtoBody returns the message body listing every field in fixed order
func MailtoBody(req models.ContactRequest) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nCompany: %s\n\nMessage:\n%s",
		req.Name, req.Email, req.Company, req.Message)
}

// BuildMailtoURI returns mailto:<address>?subject=<enc>&body=<enc>
func BuildMailtoURI(address string, req models.ContactRequest) string {
	return "mailto:" + address +
		"?subject=" + encodeComponent(MailtoSubject(req)) +
		"&body=" + encodeComponent(MailtoBody(req))
}

// encodeComponent percent-encodes s for a URI query value. Spaces become %20
// rather than '+', which mail clients would otherwise show literally.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
