// Package planner is the client for the external plan-generation/export
// service. The service is a black box: it either returns a generated plan or
// a downloadable file blob, and any failure surfaces as a single export
// error. The only local recovery is the export-formats lookup, which falls
// back to a fixed table so the export UI is never left with zero options.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/c25k/internal/calendar"
	"github.com/claude/c25k/internal/models"
)

// Client talks to the plan service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// PlanRequest is the normalized profile payload the service expects: unit
// and language codes abbreviated, schedule parameters flattened.
type PlanRequest struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Gender     string   `json:"gender"`
	Weight     float64  `json:"weight"`
	WeightUnit string   `json:"weight_unit"`
	Lang       string   `json:"lang"`
	StartDay   string   `json:"start_day"`
	Hour       int      `json:"hour"`
	Minute     int      `json:"minute"`
	RestDays   []string `json:"rest_days"`
}

// NewPlanRequest normalizes a profile into the service's payload shape.
func NewPlanRequest(p models.UserProfile, startDay time.Time, hour, minute int) PlanRequest {
	unit := "i"
	if p.WeightUnit == models.WeightKg {
		unit = "m"
	}
	lang := "e"
	if p.Language != "" {
		lang = p.Language[:1]
	}
	return PlanRequest{
		Name:       p.Name,
		Age:        p.Age,
		Gender:     p.Gender,
		Weight:     p.Weight,
		WeightUnit: unit,
		Lang:       lang,
		StartDay:   startDay.Format("2006-01-02"),
		Hour:       hour,
		Minute:     minute,
		RestDays:   p.RestDays,
	}
}

// planEnvelope is the service's success/error wrapper.
type planEnvelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Plan    []calendar.Entry  `json:"plan,omitempty"`
	Formats map[string]string `json:"formats,omitempty"`
}

// GeneratePlan asks the service for a generated plan.
func (c *Client) GeneratePlan(ctx context.Context, req PlanRequest) ([]calendar.Entry, error) {
	var env planEnvelope
	if err := c.postJSON(ctx, "/api/generate-plan", req, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("plan service: %s", env.Error)
	}
	return env.Plan, nil
}

// ExportPlan asks the service to render a plan in the given format and
// returns the file blob.
func (c *Client) ExportPlan(ctx context.Context, format string, plan []calendar.Entry, req PlanRequest) ([]byte, error) {
	payload := map[string]any{
		"format": format,
		"plan":   plan,
		"user":   req,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling export request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/export-plan", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating export request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plan service export: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export blob: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plan service export returned %d: %s", resp.StatusCode, blob)
	}
	return blob, nil
}

// DefaultFormats is the fixed fallback format-description table.
func DefaultFormats() map[string]string {
	return map[string]string{
		"ics":      "Calendar format (ICS) for Apple Calendar, Google Calendar, Outlook",
		"csv":      "Spreadsheet format for Excel, Google Sheets, Numbers",
		"json":     "Structured data format for developers and APIs",
		"markdown": "Printable checklist format",
	}
}

// ExportFormats fetches the available export formats, falling back to
// DefaultFormats on any failure.
func (c *Client) ExportFormats(ctx context.Context) map[string]string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/export-formats", nil)
	if err != nil {
		return DefaultFormats()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DefaultFormats()
	}
	defer func() { _ = resp.Body.Close() }()

	var env planEnvelope
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&env) != nil || !env.Success {
		return DefaultFormats()
	}
	// A success envelope without formats still must not leave callers with
	// a nil map.
	if len(env.Formats) == 0 {
		return DefaultFormats()
	}
	return env.Formats
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("plan service: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("plan service: %s returned %d: %s", path, resp.StatusCode, data)
	}
	return json.Unmarshal(data, out)
}
