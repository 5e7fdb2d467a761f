package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/contactform"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/httpclient"
	"github.com/mbsnyc/mbsnyc-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(cfg *config.Config) (*app, *[]string) {
	opened := &[]string{}
	return &app{
		httpClient: httpclient.NewClientWithTimeout(5 * time.Second),
		openURL: func(uri string) error {
			*opened = append(*opened, uri)
			return nil
		},
		loadConfig: func() (*config.Config, error) { return cfg, nil },
	}, opened
}

func baseConfig(backendURL string) *config.Config {
	return &config.Config{
		Contact: config.ContactConfig{
			Delivery:      config.DeliveryHTTP,
			BackendURL:    backendURL,
			MailtoAddress: "notifine2025@gmail.com",
		},
		Admin: config.AdminConfig{JWTSecret: "secret", JWTIssuer: "mbsnyc-api", TokenTTLHrs: 1},
	}
}

func run(a *app, args ...string) (string, error) {
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var janeArgs = []string{"--name", "Jane Doe", "--email", "jane@acme.com", "--company", "Acme", "--message", "Hello"}

func TestSend_HTTPSuccess(t *testing.T) {
	var got models.ContactRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	a, _ := testApp(baseConfig(server.URL))
	out, err := run(a, append([]string{"send"}, janeArgs...)...)

	require.NoError(t, err)
	assert.Contains(t, out, contactform.SuccessMessage)
	assert.Equal(t, models.ContactRequest{Name: "Jane Doe", Email: "jane@acme.com", Company: "Acme", Message: "Hello"}, got)
}

func TestSend_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a, _ := testApp(baseConfig(server.URL))
	out, err := run(a, append([]string{"send"}, janeArgs...)...)

	require.Error(t, err)
	assert.ErrorIs(t, err, contactform.ErrUnexpectedStatus)
	assert.Contains(t, out, contactform.FailureMessage)
}

func TestSend_Incomplete(t *testing.T) {
	a, _ := testApp(baseConfig("http://127.0.0.1:1"))
	_, err := run(a, "send", "--name", "Jane Doe")

	require.Error(t, err)
	assert.ErrorIs(t, err, contactform.ErrIncomplete)
}

func TestSend_MailtoWithOpen(t *testing.T) {
	a, opened := testApp(baseConfig(""))
	out, err := run(a, append([]string{"send", "--delivery", "mailto", "--open"}, janeArgs...)...)

	require.NoError(t, err)
	assert.Contains(t, out, contactform.MailtoOpeningMessage)
	require.Len(t, *opened, 1)

	uri, err := url.Parse((*opened)[0])
	require.NoError(t, err)
	assert.Equal(t, "mailto", uri.Scheme)
	assert.Equal(t, "notifine2025@gmail.com", uri.Opaque)

	query, err := url.ParseQuery(uri.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "Contact Request from Jane Doe - Acme", query.Get("subject"))
	assert.Contains(t, out, (*opened)[0])
}

func TestSend_MailtoWithoutOpenOnlyPrints(t *testing.T) {
	a, opened := testApp(baseConfig(""))
	out, err := run(a, append([]string{"send", "--delivery", "mailto"}, janeArgs...)...)

	require.NoError(t, err)
	assert.Empty(t, *opened)
	assert.Contains(t, out, "mailto:notifine2025@gmail.com?subject=")
}

func TestList_RendersTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`[{"id":"1","name":"Jane Doe","email":"jane@acme.com","company":"Acme","message":"Hello\nthere","timestamp":"2025-01-02T03:04:05Z"}]`))
	}))
	defer server.Close()

	a, _ := testApp(baseConfig(server.URL))
	out, err := run(a, "list", "--limit", "5", "--offset", "10", "--token", "tok")

	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "2025-01-02T03:04:05Z")
	assert.Contains(t, out, "Hello there")
	assert.Contains(t, out, "1 submission(s)")
}

func TestList_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Missing bearer token"}`))
	}))
	defer server.Close()

	a, _ := testApp(baseConfig(server.URL))
	_, err := run(a, "list")

	require.Error(t, err)
	assert.Equal(t, "backend returned 401: Missing bearer token", err.Error())
}

func TestToken_MintsValidAdminToken(t *testing.T) {
	a, _ := testApp(baseConfig(""))
	out, err := run(a, "token", "--subject", "ops@mbsnyc.com")
	require.NoError(t, err)

	claims, err := jwt.NewTokenManager("secret", "mbsnyc-api", 1).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops@mbsnyc.com", claims.Subject)
}

func TestToken_RequiresSecret(t *testing.T) {
	cfg := baseConfig("")
	cfg.Admin.JWTSecret = ""
	a, _ := testApp(cfg)

	_, err := run(a, "token", "--subject", "ops")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("a\n\tb"))
	long := strings.Repeat("x", 100)
	assert.Equal(t, messagePreviewLen, len([]rune(preview(long))))
}
