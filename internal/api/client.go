package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client wraps the HRMS backend's REST surface. All methods return the raw
// response body; callers decode with DecodeList or json.Unmarshal.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q has no scheme or host", baseURL)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base: parsed,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	reader, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, nil, reader, "application/json")
}

func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	reader, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, nil, reader, "application/json")
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// PostMultipart uploads a single file under the given form field.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	target := c.buildURL(path, query)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractMessage(data, resp.Header.Get("Content-Type"), resp.Status)
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
		return nil, &Error{Status: resp.StatusCode, Message: message}
	}

	return data, nil
}

// buildURL joins path onto the base URL and appends only non-empty query
// parameters.
func (c *Client) buildURL(path string, query url.Values) string {
	target := *c.base
	target.Path = strings.TrimRight(target.Path, "/") + "/" + strings.TrimLeft(path, "/")

	values := url.Values{}
	for key, list := range query {
		for _, value := range list {
			if value != "" {
				values.Add(key, value)
			}
		}
	}
	target.RawQuery = values.Encode()
	return target.String()
}

func jsonBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// extractMessage digs a human-readable message out of an error body,
// preferring message, then error, then detail. A detail list of validation
// issues is joined with ", ".
func extractMessage(body []byte, contentType, fallback string) string {
	if !strings.Contains(contentType, "application/json") {
		return fallback
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	if s := rawString(payload["message"]); s != "" {
		return s
	}
	if s := rawString(payload["error"]); s != "" {
		return s
	}
	if raw, ok := payload["detail"]; ok {
		if s := rawString(raw); s != "" {
			return s
		}
		if s := joinDetail(raw); s != "" {
			return s
		}
	}
	return fallback
}

func rawString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func joinDetail(raw json.RawMessage) string {
	var issues []json.RawMessage
	if err := json.Unmarshal(raw, &issues); err != nil {
		return ""
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if s := rawString(issue); s != "" {
			parts = append(parts, s)
			continue
		}
		var structured struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(issue, &structured); err == nil && structured.Msg != "" {
			parts = append(parts, structured.Msg)
		}
	}
	return strings.Join(parts, ", ")
}
