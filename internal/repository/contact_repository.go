package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"go.uber.org/zap"
)

// DB is the subset of *pgxpool.Pool used by the repository
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository
type PgContactRepository struct {
	db DB
}

// NewPgContactRepository creates a PgContactRepository backed by db
func NewPgContactRepository(db DB) *PgContactRepository {
	return &PgContactRepository{db: db}
}

var _ ContactRepository = (*PgContactRepository)(nil)

const insertSubmissionSQL = `
	INSERT INTO contact_submissions (id, name, email, company, message, created_at)
	VALUES ($1::uuid, $2, $3, $4, $5, $6)`

const listSubmissionsSQL = `
	SELECT id::text, name, email, company, message, created_at
	FROM contact_submissions
	ORDER BY created_at DESC, id
	LIMIT $1 OFFSET $2`

// Save inserts a new contact_submissions row
func (r *PgContactRepository) Save(ctx context.Context, submission *models.ContactSubmission) error {
	start := time.Now()
	operation := "saveContactSubmission"

	_, err := r.db.Exec(ctx, insertSubmissionSQL,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Company,
		submission.Message,
		submission.Timestamp,
	)
	recordMetrics(operation, err, metrics.MeasureDuration(start))
	if err != nil {
		return fmt.Errorf("failed to insert contact submission: %w", err)
	}

	logger.Debug("Contact submission stored", zap.String("submission_id", submission.ID))
	return nil
}

// List returns contact submissions newest first, paginated by limit/offset
func (r *PgContactRepository) List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	start := time.Now()
	operation := "listContactSubmissions"
	opts = opts.Normalize()

	submissions, err := r.list(ctx, opts)
	recordMetrics(operation, err, metrics.MeasureDuration(start))
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *PgContactRepository) list(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	rows, err := r.db.Query(ctx, listSubmissionsSQL, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.ContactSubmission, 0)
	for rows.Next() {
		var s models.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Company, &s.Message, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		s.Timestamp = s.Timestamp.UTC()
		submissions = append(submissions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact submissions: %w", err)
	}

	return submissions, nil
}

// recordMetrics records database operation metrics
func recordMetrics(operation string, err error, duration float64) {
	status := metrics.StatusLabel(err)
	metrics.DBRequestDuration.WithLabelValues("postgres_"+operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues("postgres_"+operation, status).Inc()
}
