package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/cache"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/internal/repository"
	"github.com/mbsnyc/mbsnyc-api/pkg/archive"
	apperrors "github.com/mbsnyc/mbsnyc-api/pkg/errors"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/mailer"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"github.com/mbsnyc/mbsnyc-api/pkg/tracing"
	"github.com/mbsnyc/mbsnyc-api/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SideEffectTimeout bounds the email and archive work done after a submission
// is stored. It stays well under the server's write timeout.
const SideEffectTimeout = 10 * time.Second

// ContactService stores contact submissions and fans them out to email, archive and webhook
type ContactService struct {
	repo              repository.ContactRepository
	cache             *cache.SubmissionsCache
	emailSender       EmailSender
	archiver          SubmissionArchiver
	config            *config.Config
	httpClient        httpclient.Client
	now               func() time.Time
	sideEffectTimeout time.Duration
}

// NewContactService creates a new contact service instance.
// emailSender and archiver may be nil when those integrations are not configured.
func NewContactService(
	repo repository.ContactRepository,
	emailSender EmailSender,
	archiver SubmissionArchiver,
	cfg *config.Config,
	httpClient httpclient.Client,
) *ContactService {
	if httpClient == nil {
		httpClient = httpclient.NewStandardClient()
	}

	return &ContactService{
		repo:              repo,
		cache:             cache.NewSubmissionsCache(repo.List, cfg.Cache.ContactListTTLSeconds),
		emailSender:       emailSender,
		archiver:          archiver,
		config:            cfg,
		httpClient:        httpClient,
		now:               time.Now,
		sideEffectTimeout: SideEffectTimeout,
	}
}

// WithSideEffectTimeout overrides the budget for email and archive work
func (s *ContactService) WithSideEffectTimeout(d time.Duration) *ContactService {
	s.sideEffectTimeout = d
	return s
}

// SubmitContactForm persists the request and returns the stored submission.
// Only a storage failure is returned as an error.
func (s *ContactService) SubmitContactForm(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error) {
	ctx, span := tracing.StartSpan(ctx, "ContactService.SubmitContactForm",
		attribute.String("contact.company", req.Company))
	defer span.End()

	submission := &models.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Message:   req.Message,
		Timestamp: s.now().UTC(),
	}

	if err := s.repo.Save(ctx, submission); err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		span.RecordError(err)
		logger.Error("Failed to save contact submission", zap.Error(err))
		return nil, apperrors.InternalError("failed to save contact submission", err)
	}

	logger.Info("Contact submission saved", zap.String("submission_id", submission.ID))
	s.cache.Invalidate()

	s.runSideEffects(ctx, submission)
	trigger.CallAsync(s.config.EventTriggers.ContactCreatedTriggerURL, submission.ID, s.httpClient)

	metrics.ContactSubmissions.WithLabelValues("success").Inc()
	return submission, nil
}

// ListSubmissions returns stored submissions newest first
func (s *ContactService) ListSubmissions(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	submissions, err := s.cache.Get(ctx, opts)
	if err != nil {
		logger.Error("Failed to list contact submissions", zap.Error(err))
		return nil, apperrors.InternalError("failed to list contact submissions", err)
	}
	return submissions, nil
}

// runSideEffects archives and emails the stored submission concurrently.
// Request cancellation does not reach them; sideEffectTimeout does.
func (s *ContactService) runSideEffects(ctx context.Context, submission *models.ContactSubmission) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.archive(ctx, submission)
	}()
	go func() {
		defer wg.Done()
		s.notify(ctx, submission)
	}()
	wg.Wait()
}

func (s *ContactService) archive(ctx context.Context, submission *models.ContactSubmission) {
	if s.archiver == nil {
		return
	}

	key, err := s.archiver.Archive(ctx, archive.Record{
		ID:        submission.ID,
		CreatedAt: submission.Timestamp,
		Payload:   submission,
	})
	if err != nil {
		logger.Warn("Failed to archive contact submission",
			zap.String("submission_id", submission.ID),
			zap.Error(err))
		return
	}

	logger.Debug("Contact submission archived", zap.String("key", key))
}

func (s *ContactService) notify(ctx context.Context, submission *models.ContactSubmission) {
	if s.emailSender == nil || !s.config.Email.Enabled() {
		metrics.ContactEmails.WithLabelValues("skipped").Inc()
		return
	}

	msg, err := mailer.NewContactMessage(s.config.Email.Sender, s.config.Email.Recipient, mailer.ContactDetails{
		Name:    submission.Name,
		Email:   submission.Email,
		Company: submission.Company,
		Message: submission.Message,
	})
	if err == nil {
		var emailID string
		emailID, err = s.emailSender.Send(ctx, msg)
		if err == nil {
			metrics.ContactEmails.WithLabelValues("success").Inc()
			logger.Info("Contact notification email sent",
				zap.String("submission_id", submission.ID),
				zap.String("email_id", emailID))
			return
		}
	}

	metrics.ContactEmails.WithLabelValues("error").Inc()
	logger.Error("Failed to send contact notification email",
		zap.String("submission_id", submission.ID),
		zap.Error(err))
}
