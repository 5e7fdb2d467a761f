package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"github.com/mbsnyc/mbsnyc-api/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// ContactPath is the backend route that accepts contact requests
const ContactPath = "/api/contact"

// maxDrainBytes caps how much of an ignored response body is read before closing
const maxDrainBytes = 64 * 1024

// HTTPSubmitter posts contact requests to the backend API.
// A submission succeeds only on status 200; the response body is not read.
type HTTPSubmitter struct {
	endpoint   string
	httpClient httpclient.Client
}

// NewHTTPSubmitter creates a submitter for backendURL + /api/contact
func NewHTTPSubmitter(backendURL string, httpClient httpclient.Client) *HTTPSubmitter {
	return &HTTPSubmitter{
		endpoint:   strings.TrimRight(backendURL, "/") + ContactPath,
		httpClient: httpClient,
	}
}

// Endpoint returns the URL requests are posted to
func (s *HTTPSubmitter) Endpoint() string {
	return s.endpoint
}

// Submit issues a single POST with the JSON-encoded request
func (s *HTTPSubmitter) Submit(ctx context.Context, req models.ContactRequest) error {
	ctx, span := tracing.StartSpan(ctx, "contactform.http.submit")
	defer span.End()

	start := time.Now()
	err := s.post(ctx, req)
	duration := metrics.MeasureDuration(start)

	metrics.ContactFormAttempts.WithLabelValues(config.DeliveryHTTP, metrics.StatusLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		logger.LogAPICall("contact-backend", "submitContact", "error", duration,
			zap.String("endpoint", s.endpoint),
			zap.Error(err))
		return err
	}

	logger.LogAPICall("contact-backend", "submitContact", "success", duration,
		zap.String("endpoint", s.endpoint))
	return nil
}

func (s *HTTPSubmitter) post(ctx context.Context, req models.ContactRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode contact request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contact request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes)) //nolint:errcheck // body is ignored

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}
