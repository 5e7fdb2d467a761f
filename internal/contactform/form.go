package contactform

import (
	"context"
	"fmt"
	"sync"

	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"go.uber.org/zap"
)

// Notification texts
const (
	SuccessMessage = "Thank you for contacting us! We will get back to you soon."
	FailureMessage = "Failed to submit form. Please try again."
)

// Submit control labels
const (
	SubmitLabel     = "Send Message"
	SubmittingLabel = "Sending..."
)

// State of the submission flow
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// NotificationKind distinguishes success and failure notifications
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a message surfaced to the visitor
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Notifier shows notifications to the visitor
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(n Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Form is the contact form state of one page view.
// It is safe to inspect from another goroutine while Submit is running.
type Form struct {
	submitter Submitter
	notifier  Notifier

	mu     sync.Mutex
	values models.ContactRequest
	state  State
}

// NewForm creates an empty form delivering through submitter
func NewForm(submitter Submitter, notifier Notifier) *Form {
	return &Form{
		submitter: submitter,
		notifier:  notifier,
		state:     StateIdle,
	}
}

// Set updates a single field
func (f *Form) Set(field models.ContactField, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.values.With(field, value)
}

// Fill replaces every field at once
func (f *Form) Fill(req models.ContactRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = req
}

// Values returns the current field values
func (f *Form) Values() models.ContactRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// State returns the current flow state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IsSubmitting reports whether a submission is outstanding
func (f *Form) IsSubmitting() bool {
	return f.State() == StateSubmitting
}

// CanSubmit reports whether the submit control is enabled
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateIdle && f.values.IsComplete()
}

// SubmitLabel returns the label of the submit control
func (f *Form) SubmitLabel() string {
	if f.IsSubmitting() {
		return SubmittingLabel
	}
	return SubmitLabel
}

// Reset clears every field
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = models.ContactRequest{}
}

// Submit delivers the current values once.
//
// An incomplete form or one already submitting is rejected before the
// submitter is invoked and produces no notification. Otherwise exactly one
// notification is shown: on success the fields are cleared, on failure they
// are kept so the visitor can retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	if missing := f.values.MissingFields(); len(missing) > 0 {
		f.mu.Unlock()
		return fmt.Errorf("%w: missing %v", ErrIncomplete, missing)
	}
	req := f.values
	f.state = StateSubmitting
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.state = StateIdle
		f.mu.Unlock()
	}()

	if err := f.submitter.Submit(ctx, req); err != nil {
		logger.Error("Error submitting contact form", zap.Error(err))
		f.notify(Notification{Kind: NotificationError, Message: FailureMessage})
		return err
	}

	f.Reset()
	f.notify(Notification{Kind: NotificationSuccess, Message: f.successMessage()})
	return nil
}

func (f *Form) successMessage() string {
	if m, ok := f.submitter.(SuccessMessager); ok {
		return m.SuccessMessage()
	}
	return SuccessMessage
}

func (f *Form) notify(n Notification) {
	if f.notifier != nil {
		f.notifier.Notify(n)
	}
}
