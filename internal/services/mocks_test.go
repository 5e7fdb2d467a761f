package services_test

import (
	"context"

	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/archive"
	"github.com/mbsnyc/mbsnyc-api/pkg/mailer"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of repository.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Save(ctx context.Context, submission *models.ContactSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactSubmission), args.Error(1)
}

// MockEmailSender is a mock implementation of services.EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg mailer.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// MockArchiver is a mock implementation of services.SubmissionArchiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, rec archive.Record) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}
