package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check identifies a connectivity check
type Check string

const (
	CheckConnect Check = "connect"
	CheckDB      Check = "db"
)

// Label returns the display label of the check
func (c Check) Label() string {
	switch c {
	case CheckConnect:
		return "Backend"
	case CheckDB:
		return "Database"
	default:
		return string(c)
	}
}

// CheckResult is the outcome of one connectivity check
type CheckResult struct {
	Check   Check         `json:"check"`
	Status  string        `json:"status,omitempty"`
	Err     error         `json:"-"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// OK reports whether the check succeeded
func (r CheckResult) OK() bool {
	return r.Err == nil
}

// ConnectCheck verifies the backend is reachable. Any non-2xx status fails
// with "HTTP <code>"; success returns the body's detail or "ok".
func (c *Client) ConnectCheck(ctx context.Context) (string, error) {
	const op = "connect_check"

	resp, err := c.get(ctx, op, "v1/connect_check")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(op, resp.StatusCode, "")
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", newError(KindDecode, op, "failed to decode response", err)
	}
	if msg, failed := applicationFailure(body.Status, "", body.Detail); failed {
		return "", newError(KindApplication, op, msg, nil)
	}
	if body.Detail != "" {
		return body.Detail, nil
	}
	return "ok", nil
}

// DBCheck verifies the backend can reach its database. The body is decoded
// before the status is inspected so the server's detail explains failures.
func (c *Client) DBCheck(ctx context.Context) (string, error) {
	const op = "db_check"

	resp, err := c.get(ctx, op, "v1/db_check")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", newError(KindDecode, op, "failed to decode response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(op, resp.StatusCode, body.Detail)
	}
	if msg, failed := applicationFailure(body.Status, "", body.Detail); failed {
		return "", newError(KindApplication, op, msg, nil)
	}
	if body.Detail != "" {
		return body.Detail, nil
	}
	return "db ok", nil
}

// Run performs a single check and times it
func (c *Client) Run(ctx context.Context, check Check) CheckResult {
	start := time.Now()

	var (
		status string
		err    error
	)
	switch check {
	case CheckConnect:
		status, err = c.ConnectCheck(ctx)
	case CheckDB:
		status, err = c.DBCheck(ctx)
	default:
		err = newError(KindInternal, string(check), "unknown check", nil)
	}

	result := CheckResult{Check: check, Status: status, Err: err, Elapsed: time.Since(start)}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// RunChecks performs the checks concurrently. Each result lands in its own
// slot, in the order requested; one failure does not cancel the others.
func (c *Client) RunChecks(ctx context.Context, checks ...Check) []CheckResult {
	results := make([]CheckResult, len(checks))

	var g errgroup.Group
	for i, check := range checks {
		g.Go(func() error {
			results[i] = c.Run(ctx, check)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Client) get(ctx context.Context, op, path string) (*http.Response, error) {
	endpoint := c.apiBase.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, newError(KindInternal, op, "failed to create request", err)
	}
	req.Header.Set(RequestIDHeader, c.newID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, op, "request failed", err)
	}
	return resp, nil
}
