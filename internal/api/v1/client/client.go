// Package client provides the API client for interacting with the v1 API,
// used by the operator CLI
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixflow/fixflow/internal/api/v1/handlers"
	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/services"
	"github.com/fixflow/fixflow/internal/status"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API, e.g. http://localhost:8080
	BaseURL string

	// BusinessID is the tenant every request is scoped to
	BusinessID uint

	// Timeout is the request timeout
	Timeout time.Duration
}

// Client talks to the v1 API
type Client struct {
	baseURL    string
	businessID uint
	timeout    time.Duration
}

// New creates a new API client with the given options
func New(opts Options) (*Client, error) {
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if opts.BusinessID == 0 {
		return nil, fmt.Errorf("business id is required")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    opts.BaseURL,
		businessID: opts.BusinessID,
		timeout:    timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *Client) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	agent.Set(handlers.BusinessIDHeader, strconv.FormatUint(uint64(c.businessID), 10))

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and decodes the response envelope,
// unwrapping the Data field into out when a target is provided
func (c *Client) doRequest(agent *fiber.Agent, out interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	var envelope struct {
		Slug  handlers.Slug   `json:"slug"`
		Error string          `json:"error"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}
	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("%s: %s", envelope.Slug, envelope.Error)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("error decoding response data: %w", err)
		}
	}
	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *Client) executeRequest(ctx context.Context, method, endpoint string, body, out interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	return c.doRequest(agent, out)
}

// CreateJob creates a new repair job
func (c *Client) CreateJob(ctx context.Context, req services.CreateJobRequest) (*models.Job, error) {
	var job models.Job
	if err := c.executeRequest(ctx, http.MethodPost, "/api/v1/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns a page of jobs, optionally filtered by status
func (c *Client) ListJobs(ctx context.Context, st string, limit int) ([]models.Job, error) {
	endpoint := fmt.Sprintf("/api/v1/jobs?limit=%d", limit)
	if st != "" {
		endpoint += "&status=" + url.QueryEscape(st)
	}
	var jobs []models.Job
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob returns one job enriched with its current status age
func (c *Client) GetJob(ctx context.Context, id uint) (*services.JobWithTimeline, error) {
	var job services.JobWithTimeline
	if err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob applies a partial update to a job
func (c *Client) UpdateJob(ctx context.Context, id uint, req services.UpdateJobRequest) (*models.Job, error) {
	var job models.Job
	if err := c.executeRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/jobs/%d", id), req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetStatusTimeline returns a job's reconstructed status history
func (c *Client) GetStatusTimeline(ctx context.Context, id uint) ([]status.TimelineEntry, error) {
	var timeline []status.TimelineEntry
	if err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d/timeline", id), nil, &timeline); err != nil {
		return nil, err
	}
	return timeline, nil
}

// GetDashboard returns the tenant dashboard
func (c *Client) GetDashboard(ctx context.Context) (*services.Dashboard, error) {
	var dash services.Dashboard
	if err := c.executeRequest(ctx, http.MethodGet, "/api/v1/analytics/dashboard", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
