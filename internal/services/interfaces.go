package services

import (
	"context"

	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/archive"
	"github.com/mbsnyc/mbsnyc-api/pkg/mailer"
)

// ContactServiceInterface defines the interface for contact service operations
type ContactServiceInterface interface {
	SubmitContactForm(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error)
	ListSubmissions(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error)
}

// EmailSender delivers notification emails
type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// SubmissionArchiver keeps a copy of each submission outside the database
type SubmissionArchiver interface {
	Archive(ctx context.Context, rec archive.Record) (string, error)
}

// Ensure implementations satisfy their interfaces
var _ ContactServiceInterface = (*ContactService)(nil)
var _ EmailSender = (*mailer.ResendClient)(nil)
var _ SubmissionArchiver = (*archive.StorageClient)(nil)
