package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mbsnyc/mbsnyc-api/internal/contactform"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/spf13/cobra"
)

const messagePreviewLen = 40

type listOptions struct {
	limit      int
	offset     int
	token      string
	backendURL string
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored contact submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("backend-url") {
				opts.backendURL = a.cfg.Contact.BackendURL
			}
			submissions, err := a.fetchSubmissions(cmd, opts)
			if err != nil {
				return err
			}
			renderSubmissions(cmd.OutOrStdout(), submissions)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.limit, "limit", 50, "maximum number of submissions")
	f.IntVar(&opts.offset, "offset", 0, "number of submissions to skip")
	f.StringVar(&opts.token, "token", "", "admin bearer token (see `contact token`)")
	f.StringVar(&opts.backendURL, "backend-url", "", "backend base URL (overrides BACKEND_URL)")

	return cmd
}

func (a *app) fetchSubmissions(cmd *cobra.Command, opts listOptions) ([]models.ContactSubmission, error) {
	if opts.backendURL == "" {
		return nil, fmt.Errorf("backend URL is required")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(opts.limit))
	query.Set("offset", strconv.Itoa(opts.offset))
	endpoint := strings.TrimRight(opts.backendURL, "/") + contactform.ContactPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("backend returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("backend returned %d", resp.StatusCode)
	}

	var submissions []models.ContactSubmission
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return submissions, nil
}

func renderSubmissions(w io.Writer, submissions []models.ContactSubmission) {
	if len(submissions) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No submissions."))
		return
	}

	rows := make([][]string, 0, len(submissions))
	for _, s := range submissions {
		rows = append(rows, []string{
			s.Timestamp.UTC().Format(time.RFC3339),
			s.Name,
			s.Email,
			s.Company,
			preview(s.Message),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RECEIVED", "NAME", "EMAIL", "COMPANY", "MESSAGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d submission(s)", len(submissions))))
}

// preview flattens and truncates a message for a single table cell
func preview(message string) string {
	flat := strings.Join(strings.Fields(message), " ")
	runes := []rune(flat)
	if len(runes) <= messagePreviewLen {
		return flat
	}
	return string(runes[:messagePreviewLen-1]) + "…"
}
