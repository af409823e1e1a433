// Package client is the request/response boundary to the extraction
// service. It speaks the multipart/JSON contract of /api/extract and
// /api/jobs and classifies failures so callers can tell a transport problem
// apart from a server-reported extraction failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xindus-labs/shipdocs/constants"
	"github.com/xindus-labs/shipdocs/internal/common"
	"github.com/xindus-labs/shipdocs/internal/model"
)

// File is one document queued for upload.
type File struct {
	Name string
	Data []byte
}

// TransportError is a network, timeout or non-2xx HTTP failure. It is
// distinct from a server-reported extraction failure, which arrives as a
// well-formed JobStatus with a failed result.
type TransportError struct {
	Op         string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: server returned status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches the common transport sentinel, so callers can classify with
// errors.Is without importing this package's concrete type.
func (e *TransportError) Is(target error) bool { return target == common.ErrTransport }

// Config holds the client's connection settings.
type Config struct {
	BaseURL        string
	ExtractTimeout time.Duration // budget for the long-running extract call
	LookupTimeout  time.Duration // budget for point lookups and downloads
}

// Client talks to one extraction service.
type Client struct {
	baseURL string
	extract *http.Client
	lookup  *http.Client
	logger  *slog.Logger
}

// New builds a Client. Zero timeouts fall back to 180s for extraction and
// 30s for lookups.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 180 * time.Second
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		extract: &http.Client{Timeout: cfg.ExtractTimeout},
		lookup:  &http.Client{Timeout: cfg.LookupTimeout},
		logger:  logger,
	}
}

// Extract submits files plus options and blocks until the terminal
// JobStatus arrives. The exchange_rate field is only sent when the output
// currency is not auto.
func (c *Client) Extract(ctx context.Context, files []File, opts model.ExtractionOptions) (*model.JobStatus, error) {
	reqID := uuid.New().String()
	start := time.Now()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("build multipart: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write file part %q: %w", f.Name, err)
		}
	}

	currency := opts.OutputCurrency
	if currency == "" {
		currency = constants.CurrencyAuto
	}
	if err := mw.WriteField("output_currency", currency); err != nil {
		return nil, fmt.Errorf("write output_currency: %w", err)
	}
	if currency != constants.CurrencyAuto && opts.ExchangeRate != "" {
		if err := mw.WriteField("exchange_rate", opts.ExchangeRate); err != nil {
			return nil, fmt.Errorf("write exchange_rate: %w", err)
		}
	}
	if err := mw.WriteField("sync_hs_codes", strconv.FormatBool(opts.SyncHSCodes)); err != nil {
		return nil, fmt.Errorf("write sync_hs_codes: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	url := c.baseURL + "/api/extract"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", reqID)

	c.logger.Info("client.extract.request",
		"req_id", reqID,
		"url", url,
		"files", len(files),
		"output_currency", currency,
		"sync_hs_codes", opts.SyncHSCodes,
	)

	resp, err := c.extract.Do(req)
	if err != nil {
		c.logger.Error("client.extract.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, &TransportError{Op: "extract", Err: err}
	}
	defer c.closeBody(resp.Body, reqID)

	status, err := c.decodeJobStatus(resp, "extract", reqID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("client.extract.response",
		"req_id", reqID,
		"job_id", status.JobID,
		"status", string(status.Status),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return status, nil
}

// Job retrieves the JobStatus of a previously submitted job.
func (c *Client) Job(ctx context.Context, jobID string) (*model.JobStatus, error) {
	reqID := uuid.New().String()
	url := fmt.Sprintf("%s/api/jobs/%s", c.baseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.lookup.Do(req)
	if err != nil {
		c.logger.Error("client.job.send_error", "req_id", reqID, "job_id", jobID, "error", err)
		return nil, &TransportError{Op: "job lookup", Err: err}
	}
	defer c.closeBody(resp.Body, reqID)

	return c.decodeJobStatus(resp, "job lookup", reqID)
}

// DownloadURL returns the navigation target for one generated output file.
func (c *Client) DownloadURL(jobID string, kind constants.DownloadKind) string {
	return fmt.Sprintf("%s/api/download/%s/%s", c.baseURL, jobID, kind)
}

// Download fetches one generated output file and returns its bytes together
// with the suggested file name.
func (c *Client) Download(ctx context.Context, jobID string, kind constants.DownloadKind) ([]byte, string, error) {
	if !kind.Valid() {
		return nil, "", fmt.Errorf("unknown download kind %q", kind)
	}
	reqID := uuid.New().String()
	url := c.DownloadURL(jobID, kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.lookup.Do(req)
	if err != nil {
		return nil, "", &TransportError{Op: "download", Err: err}
	}
	defer c.closeBody(resp.Body, reqID)

	if resp.StatusCode/100 != 2 {
		return nil, "", &TransportError{Op: "download", StatusCode: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &TransportError{Op: "download", Err: err}
	}

	c.logger.Info("client.download.ok", "req_id", reqID, "job_id", jobID, "kind", string(kind), "bytes", len(raw))
	return raw, kind.FileName(), nil
}

// decodeJobStatus validates and decodes a JobStatus response body. Non-2xx
// responses become TransportErrors carrying the server's detail text when
// one is present.
func (c *Client) decodeJobStatus(resp *http.Response, op, reqID string) (*model.JobStatus, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode/100 != 2 {
		c.logger.Error("client.response.http_error", "req_id", reqID, "op", op, "status", resp.StatusCode, "bytes", len(raw))
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: errorFromDetail(raw)}
	}

	if err := model.ValidateJobStatusJSON(raw); err != nil {
		c.logger.Error("client.response.schema_error", "req_id", reqID, "op", op, "error", err)
		return nil, &TransportError{Op: op, Err: fmt.Errorf("invalid response: %w", err)}
	}

	var status model.JobStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &status, nil
}

// errorFromDetail surfaces FastAPI-style {"detail": "..."} bodies as error
// text; anything else is ignored.
func errorFromDetail(raw []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return fmt.Errorf("%s", payload.Detail)
	}
	return nil
}

func (c *Client) closeBody(body io.ReadCloser, reqID string) {
	if err := body.Close(); err != nil {
		c.logger.Warn("client.response_body_close_error", "req_id", reqID, "error", err)
	}
}
