package repository

import (
	"context"

	"github.com/mbsnyc/mbsnyc-api/internal/models"
)

// ContactRepository persists contact submissions
type ContactRepository interface {
	// Save inserts a new submission; ID and Timestamp must already be set
	Save(ctx context.Context, submission *models.ContactSubmission) error

	// List returns submissions newest first
	List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error)
}

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}
