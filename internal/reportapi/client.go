// Package reportapi is the client for the external report storage backend.
// The backend owns all report persistence; this service only submits new
// reports and reads them back for the dashboard.
package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"speakup.app/intake/common/logger"
	"speakup.app/intake/core/config"
	"speakup.app/intake/internal/model"
)

const (
	savePath     = "/api/report/save"
	retrievePath = "/api/report/retrieve"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.ReportAPIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type submitRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Report string `json:"report"`
}

// Submit saves one finished report. Any non-2xx status is a failure; the
// backend's response body is not interpreted beyond that.
func (c *Client) Submit(ctx context.Context, name, email, report string) error {
	sc := logger.StartSpan(ctx, "intake.reportapi.submit")
	defer sc.End()
	ctx = sc.Context()

	body, err := json.Marshal(submitRequest{Name: name, Email: email, Report: report})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+savePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		sc.RecordError(err)
		return fmt.Errorf("save report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("save report: unexpected status %d", resp.StatusCode)
		sc.RecordError(err)
		return err
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type storedReportRow struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// Retrieve returns every stored report, in the backend's order.
func (c *Client) Retrieve(ctx context.Context) ([]model.StoredReport, error) {
	sc := logger.StartSpan(ctx, "intake.reportapi.retrieve")
	defer sc.End()
	ctx = sc.Context()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+retrievePath, nil)
	if err != nil {
		return nil, fmt.Errorf("build retrieve request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("retrieve reports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("retrieve reports: unexpected status %d", resp.StatusCode)
		sc.RecordError(err)
		return nil, err
	}

	var rows []storedReportRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	reports := make([]model.StoredReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, model.StoredReport{
			ID:       row.ID,
			Title:    row.Title,
			Status:   model.ReportStatus(row.Status),
			Category: row.Category,
			Date:     row.Date,
		})
	}
	return reports, nil
}
