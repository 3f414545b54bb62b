// Package scheduleapi is the REST client for the external persistence and
// catalog collaborator. The core never talks to the network itself; every
// call here is initiated by the calling layer with its own context.
package scheduleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/transpeq/fleetboard/core/catalog"
	"github.com/transpeq/fleetboard/core/draft"
	"github.com/transpeq/fleetboard/core/model"
)

// Authorizer sets the Authorization header on outgoing requests.
// auth.ClientCred implements it; tests use a static token.
type Authorizer interface {
	SetAuthHeader(r *http.Request) error
}

// RejectedError is returned when the collaborator re-validates a payload
// and refuses it, e.g. a profile deleted concurrently. The draft is left
// untouched so the operator can adjust and retry.
type RejectedError struct {
	StatusCode int
	Detail     string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("submission rejected (%d): %s", e.StatusCode, e.Detail)
}

// Config defines the collaborator endpoint settings.
type Config struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}

// ListFilter narrows a schedule query. Zero values mean no filter.
type ListFilter struct {
	CompanyID   int64
	UF          string
	StartDate   time.Time
	EndDate     time.Time
	ProfileName string
}

// Client talks to the schedule API.
type Client struct {
	baseURL string
	http    *http.Client
	auth    Authorizer
}

// New creates a Client. auth may be nil for unauthenticated endpoints.
func New(cfg Config, auth Authorizer) *Client {
	cfg.SetDefaults()
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		auth:    auth,
	}
}

// Load fetches the reference catalog. It satisfies catalog.Source; a
// transport failure surfaces catalog.ErrUnavailable.
func (c *Client) Load(ctx context.Context) (*catalog.Catalog, error) {
	var res catalogResponse
	if err := c.get(ctx, "/catalog", nil, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
	return res.toCatalog(), nil
}

// CreateSchedule submits a new schedule payload.
func (c *Client) CreateSchedule(ctx context.Context, p draft.Payload) (model.ScheduleRecord, error) {
	return c.submit(ctx, http.MethodPost, "/schedules", p)
}

// UpdateSchedule replaces the schedule with the given id.
func (c *Client) UpdateSchedule(ctx context.Context, id int64, p draft.Payload) (model.ScheduleRecord, error) {
	return c.submit(ctx, http.MethodPut, fmt.Sprintf("/schedules/%d", id), p)
}

// ListSchedules fetches persisted schedules matching the filter, in the
// order the collaborator returns them.
func (c *Client) ListSchedules(ctx context.Context, f ListFilter) ([]model.ScheduleRecord, error) {
	q := url.Values{}
	if f.CompanyID != 0 {
		q.Set("company_id", fmt.Sprintf("%d", f.CompanyID))
	}
	if f.UF != "" {
		q.Set("uf", f.UF)
	}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.Format(dateLayout))
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.Format(dateLayout))
	}
	if f.ProfileName != "" {
		q.Set("profile_name", f.ProfileName)
	}
	var res []scheduleResponse
	if err := c.get(ctx, "/schedules", q, &res); err != nil {
		return nil, err
	}
	records := make([]model.ScheduleRecord, 0, len(res))
	for _, r := range res {
		records = append(records, r.toRecord())
	}
	return records, nil
}

func (c *Client) submit(ctx context.Context, method, path string, p draft.Payload) (model.ScheduleRecord, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	if err := c.setAuth(req); err != nil {
		return model.ScheduleRecord{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return model.ScheduleRecord{}, &RejectedError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return model.ScheduleRecord{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, raw)
	}
	var res scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("decode response: %w", err)
	}
	return res.toRecord(), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if err := c.setAuth(req); err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setAuth(req *http.Request) error {
	if c.auth == nil {
		return nil
	}
	if err := c.auth.SetAuthHeader(req); err != nil {
		return fmt.Errorf("set auth header: %w", err)
	}
	return nil
}

// readDetail extracts the collaborator's error detail, falling back to the
// raw body.
func readDetail(r io.Reader) string {
	raw, _ := io.ReadAll(r)
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return string(raw)
}
