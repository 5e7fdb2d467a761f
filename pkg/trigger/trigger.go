package trigger

import (
	"context"
	"net/http"
	"time"

	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
	"go.uber.org/zap"
)

// Timeout bounds a single trigger call
const Timeout = 10 * time.Second

// CallAsync calls triggerURL with recordID appended, e.g. ".../hook?submission_id=" + id.
// It returns immediately. Failures are only logged.
func CallAsync(triggerURL, recordID string, httpClient httpclient.Client) {
	if triggerURL == "" {
		return
	}

	go Call(context.Background(), triggerURL, recordID, httpClient)
}

// Call performs the trigger request synchronously and reports whether it got a 2xx
func Call(ctx context.Context, triggerURL, recordID string, httpClient httpclient.Client) bool {
	if triggerURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	targetURL := triggerURL + recordID
	fields := []zap.Field{zap.String("url", targetURL), zap.String("record_id", recordID)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		logger.Error("Invalid trigger URL", append(fields, zap.Error(err))...)
		return false
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to call trigger URL", append(fields, zap.Error(err))...)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Info("Trigger URL called successfully", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return true
	}

	logger.Warn("Trigger URL returned non-success status", append(fields, zap.Int("status_code", resp.StatusCode))...)
	return false
}
