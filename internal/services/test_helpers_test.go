package services_test

import (
	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AppEnv: "test"},
		Email: config.EmailConfig{
			ResendAPIKey: "re_test",
			Sender:       "onboarding@resend.dev",
			Recipient:    "notifine2025@gmail.com",
		},
		Cache: config.CacheConfig{ContactListTTLSeconds: 60},
	}
}

func janeDoeRequest() *models.ContactRequest {
	return &models.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@acme.com",
		Company: "Acme",
		Message: "Hello",
	}
}
