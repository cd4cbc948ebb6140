// Package client talks to the traffic violation analysis service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/logger"
)

// RequestIDHeader carries a per-request UUID for correlating server logs
const RequestIDHeader = "X-Request-ID"

// Config holds the endpoints and timeout of a Client
type Config struct {
	ServiceURL string
	APIBaseURL string
	Timeout    time.Duration
}

// Client is an HTTP client for the analysis service
type Client struct {
	serviceURL *url.URL
	apiBase    *url.URL
	http       *http.Client
	log        *logger.Logger
	newID      func() string
}

// New creates a client. A zero timeout leaves requests unbounded.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	serviceURL, err := url.Parse(strings.TrimSpace(cfg.ServiceURL))
	if err != nil || serviceURL.Host == "" {
		return nil, fmt.Errorf("invalid service url %q", cfg.ServiceURL)
	}
	apiBase, err := url.Parse(strings.TrimSpace(cfg.APIBaseURL))
	if err != nil || apiBase.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", cfg.APIBaseURL)
	}
	if log == nil {
		log = logger.New("client", nil)
	}

	return &Client{
		serviceURL: serviceURL,
		apiBase:    apiBase,
		http:       &http.Client{Timeout: cfg.Timeout},
		log:        log,
		newID:      uuid.NewString,
	}, nil
}

// ServiceURL returns the analysis service root
func (c *Client) ServiceURL() string {
	return c.serviceURL.String()
}

// APIBaseURL returns the root of the connectivity endpoints
func (c *Client) APIBaseURL() string {
	return c.apiBase.String()
}

// Health performs the liveness probe
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	const op = "health"
	endpoint := c.serviceURL.JoinPath("health")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, newError(KindInternal, op, "failed to create request", err)
	}
	req.Header.Set(RequestIDHeader, c.newID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, op, "health check failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp.StatusCode, "")
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, newError(KindDecode, op, "failed to decode response", err)
	}
	return &health, nil
}

// Upload submits the files and selected events for analysis. File bytes are
// streamed from disk; nothing is buffered in memory.
func (c *Client) Upload(ctx context.Context, files []common.PendingFile, events common.SelectedEvents) (*UploadResponse, error) {
	const op = "upload"
	if len(files) == 0 || events.Len() == 0 {
		return nil, newError(KindInternal, op, "invalid submission", ErrNothingToSubmit)
	}

	for _, f := range files {
		if _, err := os.Stat(f.Path); err != nil {
			return nil, newError(KindInternal, op, "cannot read "+f.Name, err)
		}
	}

	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, newError(KindInternal, op, "failed to encode events", err)
	}

	endpoint := c.serviceURL.JoinPath("upload")
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), pr)
	if err != nil {
		_ = pr.Close()
		return nil, newError(KindInternal, op, "failed to create request", err)
	}
	requestID := c.newID()
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	go func() {
		pw.CloseWithError(writeUploadBody(mw, files, eventsJSON))
	}()

	start := time.Now()
	c.log.InfoWithFields("Submitting videos for analysis", []logger.Field{
		logger.F("request_id", requestID),
		logger.Count(len(files)),
		logger.F("events", string(eventsJSON)),
	})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, op, "upload failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindNetwork, op, "failed to read response", err)
	}

	var result UploadResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := result.Detail
		if detail == "" {
			detail = result.Error
		}
		return nil, statusError(op, resp.StatusCode, detail)
	}
	if decodeErr != nil {
		return nil, newError(KindDecode, op, "failed to decode response", decodeErr)
	}
	if msg, failed := applicationFailure(result.Status, result.Error, result.Detail); failed {
		e := newError(KindApplication, op, msg, nil)
		e.StatusCode = resp.StatusCode
		e.Detail = result.Detail
		return nil, e
	}
	if result.Results == nil {
		result.Results = []common.AnalysisResult{}
	}

	c.log.InfoWithFields("Analysis response received", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("message", result.Message),
		logger.F("results", len(result.Results)),
		logger.Duration(time.Since(start)),
	})

	return &result, nil
}

// writeUploadBody writes one "files" part per file followed by the "events" field
func writeUploadBody(mw *multipart.Writer, files []common.PendingFile, eventsJSON []byte) error {
	for _, f := range files {
		if err := writeFilePart(mw, f); err != nil {
			return err
		}
	}
	if err := mw.WriteField("events", string(eventsJSON)); err != nil {
		return fmt.Errorf("failed to write events field: %w", err)
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(mw *multipart.Writer, f common.PendingFile) error {
	contentType := f.MediaType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="files"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create part for %s: %w", f.Name, err)
	}

	// #nosec G304 - paths come from files the user selected
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to stream %s: %w", f.Name, err)
	}
	return nil
}
