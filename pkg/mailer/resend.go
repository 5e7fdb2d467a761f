package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mbsnyc/mbsnyc-api/pkg/circuitbreaker"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"github.com/mbsnyc/mbsnyc-api/pkg/metrics"
	"github.com/mbsnyc/mbsnyc-api/pkg/retry"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrRejected is returned when the email API answers with a 4xx status
var ErrRejected = errors.New("email rejected by provider")

// Message is a single outgoing email
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// ResendClient sends email through the Resend HTTP API
type ResendClient struct {
	apiKey      string
	baseURL     string
	httpClient  httpclient.Client
	breaker     *gobreaker.CircuitBreaker
	retryConfig retry.Config
}

// NewResendClient creates a client for the Resend API rooted at baseURL
func NewResendClient(apiKey, baseURL string, httpClient httpclient.Client) *ResendClient {
	if httpClient == nil {
		httpClient = httpclient.NewStandardClient()
	}
	return &ResendClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		breaker:     circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("resend")),
		retryConfig: retry.EmailConfig(),
	}
}

// WithRetryConfig overrides the retry policy
func (c *ResendClient) WithRetryConfig(cfg retry.Config) *ResendClient {
	c.retryConfig = cfg
	return c
}

// Send delivers msg and returns the provider's email id
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	start := time.Now()
	operation := "send"

	id, err := retry.DoWithResult(ctx, c.retryConfig, "resend.send", func() (string, error) {
		return circuitbreaker.Execute(c.breaker, func() (string, error) {
			return c.send(ctx, msg)
		})
	})

	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	metrics.EmailRequestDuration.WithLabelValues(operation, status).Observe(duration)
	logger.LogAPICall("resend", operation, status, duration, zap.String("email_id", id))

	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *ResendClient) send(ctx context.Context, msg Message) (string, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("failed to encode email: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("failed to build email request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out sendResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return "", retry.Permanent(fmt.Errorf("failed to decode email response: %w", err))
		}
		return out.ID, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		return "", retry.Permanent(fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body))))
	}
}
