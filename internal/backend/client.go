package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/yourname/moveup/internal"
)

// Client is a stateless wrapper around the MoveUp REST API: one method per
// endpoint, JSON bodies both ways. Callers own retry and timeout policy
// through the injected http.Client and contexts.
type Client struct {
	baseURL string
	http    *http.Client
	logger  internal.Logger
}

func New(baseURL string, httpClient *http.Client, logger internal.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.logger.Errorf("failed to create request for %s: %v", path, err)
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf("request to %s failed: %v", path, err)
		return nil, &TransportError{Err: err}
	}
	return resp, nil
}

// getJSON fetches path and decodes a 200 body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.serverError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Errorf("failed to decode response from %s: %v", path, err)
		return &DecodeError{Err: err}
	}
	return nil
}

// postJSON posts body to path and expects wantStatus. When out is non-nil
// the response body is decoded into it.
func (c *Client) postJSON(ctx context.Context, path string, body interface{}, wantStatus int, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		return c.serverError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Errorf("failed to decode response from %s: %v", path, err)
		return &DecodeError{Err: err}
	}
	return nil
}

func decodeBody(resp *http.Response, out interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// serverError drains a failed response, picking up the server's message
// field when the body carries one.
func (c *Client) serverError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	c.logger.Errorf("%s %s returned %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
	return &ServerError{StatusCode: resp.StatusCode, Message: envelope.Message}
}
