// Package api implements the generic JSON-over-HTTP collaborator used by
// every part of the client. It injects the bearer credential from persisted
// storage and normalizes success and failure into a uniform result shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// TokenSource supplies the current bearer credential, or "" when there
// is none. The persisted state file implements it.
type TokenSource interface {
	Token() string
}

// Client issues authenticated JSON requests against a fixed base URL.
type Client struct {
	// baseURL is the server prefix including the /api segment.
	baseURL string
	// http is the underlying transport.
	http *http.Client
	// tokens supplies the bearer credential injected on every request.
	tokens TokenSource
	// log records request failures for diagnosis.
	log *zap.Logger
}

// New constructs a Client against baseURL. tokens may not be nil.
func New(baseURL string, tokens TokenSource, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
}

// Result is the uniform outcome of a request. Data is set iff Status is a
// success code and the body decoded into T. Transport failures carry
// Status 0 with Err set; HTTP failures carry the server's message in Err.
type Result[T any] struct {
	// Data is the decoded response body on success.
	Data *T
	// Err is a human-readable failure message when Data is absent.
	Err string
	// Status is the HTTP status code, or 0 on a transport failure.
	Status int
}

// OK reports whether the request succeeded and Data is present.
func (r Result[T]) OK() bool {
	return r.Data != nil
}

// Get issues an authenticated GET request.
func Get[T any](ctx context.Context, c *Client, endpoint string) Result[T] {
	return request[T](ctx, c, http.MethodGet, endpoint, nil)
}

// Post issues an authenticated POST request with a JSON body.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any) Result[T] {
	return request[T](ctx, c, http.MethodPost, endpoint, body)
}

// Put issues an authenticated PUT request with a JSON body.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any) Result[T] {
	return request[T](ctx, c, http.MethodPut, endpoint, body)
}

// Delete issues an authenticated DELETE request.
func Delete[T any](ctx context.Context, c *Client, endpoint string) Result[T] {
	return request[T](ctx, c, http.MethodDelete, endpoint, nil)
}

// errorBody is the failure shape returned by the backend.
type errorBody struct {
	Message string `json:"message"`
}

func request[T any](ctx context.Context, c *Client, method, endpoint string, body any) Result[T] {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return Result[T]{Err: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return Result[T]{Err: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return Result[T]{Err: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result[T]{Err: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		if eb.Message == "" {
			eb.Message = "request failed"
		}
		return Result[T]{Err: eb.Message, Status: resp.StatusCode}
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		// A success status with an undecodable body is indistinguishable
		// from a broken transport to callers.
		c.log.Debug("malformed response body", zap.String("endpoint", endpoint), zap.Error(err))
		return Result[T]{Err: "malformed response: " + err.Error()}
	}
	return Result[T]{Data: &data, Status: resp.StatusCode}
}
