// Package redmine is a thin read-only client for the Redmine REST API.
//
// Only the resources the completion provider and the listing commands need
// are covered: projects, open issues, and time-entry activities. Writes are
// deliberately absent.
package redmine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redtime-cli/redtime/internal/catalog"
	"github.com/redtime-cli/redtime/internal/derrors"
)

const (
	// DefaultTimeout bounds any single API round-trip.
	DefaultTimeout = 5 * time.Second
	// MaxResponseSize caps API responses (4MB).
	MaxResponseSize = 4 * 1024 * 1024
	// issueLimit matches the legacy tool's page size for open issues.
	issueLimit = 50
)

// Client talks to a Redmine server. It implements catalog.Source.
type Client struct {
	baseURL  string
	apiKey   string
	username string
	password string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey authenticates with the X-Redmine-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBasicAuth authenticates with username and password.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithHTTPClient overrides the HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Projects returns all projects visible to the configured user.
func (c *Client) Projects(ctx context.Context) ([]catalog.Project, error) {
	var payload struct {
		Projects []catalog.Project `json:"projects"`
	}
	query := url.Values{"limit": {"100"}}
	if err := c.get(ctx, "/projects.json", query, &payload); err != nil {
		return nil, derrors.NewCatalogError("projects", "fetching projects", err)
	}
	return payload.Projects, nil
}

// Issues returns open issues, scoped to a project when projectID > 0.
func (c *Client) Issues(ctx context.Context, projectID int) ([]catalog.Issue, error) {
	var payload struct {
		Issues []struct {
			ID      int    `json:"id"`
			Subject string `json:"subject"`
			Project struct {
				ID int `json:"id"`
			} `json:"project"`
		} `json:"issues"`
	}

	query := url.Values{
		"status_id": {"open"},
		"limit":     {fmt.Sprintf("%d", issueLimit)},
	}
	if projectID > 0 {
		query.Set("project_id", fmt.Sprintf("%d", projectID))
	}

	if err := c.get(ctx, "/issues.json", query, &payload); err != nil {
		return nil, derrors.NewCatalogError("issues", "fetching issues", err)
	}

	issues := make([]catalog.Issue, 0, len(payload.Issues))
	for _, issue := range payload.Issues {
		issues = append(issues, catalog.Issue{
			ID:        issue.ID,
			Subject:   issue.Subject,
			ProjectID: issue.Project.ID,
		})
	}
	return issues, nil
}

// Activities returns time-entry activities. When projectID > 0 the
// project-specific set is used, otherwise the global enumeration.
func (c *Client) Activities(ctx context.Context, projectID int) ([]catalog.Activity, error) {
	if projectID > 0 {
		var payload struct {
			Project struct {
				Activities []catalog.Activity `json:"time_entry_activities"`
			} `json:"project"`
		}
		path := fmt.Sprintf("/projects/%d.json", projectID)
		query := url.Values{"include": {"time_entry_activities"}}
		if err := c.get(ctx, path, query, &payload); err != nil {
			return nil, derrors.NewCatalogError("activities", "fetching project activities", err)
		}
		return payload.Project.Activities, nil
	}

	var payload struct {
		Activities []catalog.Activity `json:"time_entry_activities"`
	}
	if err := c.get(ctx, "/enumerations/time_entry_activities.json", nil, &payload); err != nil {
		return nil, derrors.NewCatalogError("activities", "fetching activities", err)
	}
	return payload.Activities, nil
}

// get performs a GET request and decodes the JSON response into target.
func (c *Client) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u = u.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Redmine-API-Key", c.apiKey)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, u.Path)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return err
	}

	return json.Unmarshal(data, target)
}
