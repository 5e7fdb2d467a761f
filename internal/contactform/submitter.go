// Package contactform implements the contact form submission flow: the form
// state owned by a single view, and the two interchangeable delivery
// strategies (HTTP backend or the visitor's mail client).
package contactform

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	apperrors "github.com/mbsnyc/mbsnyc-api/pkg/errors"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
)

var (
	// ErrIncomplete is returned when a required field is empty; no delivery is attempted
	ErrIncomplete = errors.New("contact form incomplete")

	// ErrSubmitInProgress is returned while a previous submission is still outstanding
	ErrSubmitInProgress = errors.New("contact form submission in progress")

	// ErrTransport indicates the request never got a response
	ErrTransport = errors.New("contact request transport failure")

	// ErrUnexpectedStatus indicates the backend answered with anything but 200
	ErrUnexpectedStatus = errors.New("contact request rejected")
)

// Submitter delivers a complete contact request
type Submitter interface {
	Submit(ctx context.Context, req models.ContactRequest) error
}

// SuccessMessager is implemented by submitters whose success notification
// differs from the default thank-you text.
type SuccessMessager interface {
	SuccessMessage() string
}

// NewSubmitter returns the delivery strategy selected by cfg.Delivery
func NewSubmitter(cfg config.ContactConfig, httpClient httpclient.Client, navigator Navigator) (Submitter, error) {
	switch cfg.Delivery {
	case config.DeliveryHTTP:
		if cfg.BackendURL == "" {
			return nil, apperrors.InvalidInputError("BACKEND_URL", "required for http delivery")
		}
		if httpClient == nil {
			httpClient = httpclient.NewStandardClient()
		}
		return NewHTTPSubmitter(cfg.BackendURL, httpClient), nil
	case config.DeliveryMailto:
		if cfg.MailtoAddress == "" {
			return nil, apperrors.InvalidInputError("CONTACT_MAILTO_ADDRESS", "required for mailto delivery")
		}
		if navigator == nil {
			return nil, apperrors.UnavailableError("mail client navigator")
		}
		return NewMailtoSubmitter(cfg.MailtoAddress, navigator), nil
	default:
		return nil, apperrors.InvalidInputError("CONTACT_DELIVERY", fmt.Sprintf("unknown delivery %q", cfg.Delivery))
	}
}
