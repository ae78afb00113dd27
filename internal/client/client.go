// Package client talks to the remote store service (catalog, sales and
// reports endpoints) over REST/JSON. Responses are mapped to typed errors
// so the rest of the terminal never inspects HTTP status codes.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnavailable means no response reached the service at all.
	ErrUnavailable = errors.New("store service unavailable")
	// ErrNotFound means the entity was deleted or never existed server-side.
	ErrNotFound = errors.New("not found")
	// ErrServerValidation means the service rejected the payload, e.g. the
	// cart referenced stock that is stale on the terminal.
	ErrServerValidation = errors.New("server rejected request")
)

type apiError struct {
	Message string `json:"message"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (c *Client) request() *resty.Request {
	return c.http.R().SetError(&apiError{})
}

// translate folds a resty result into the package's sentinel errors.
func translate(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := http.StatusText(resp.StatusCode())
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		msg = apiErr.Message
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		return fmt.Errorf("%w: %s", ErrServerValidation, msg)
	default:
		return fmt.Errorf("store service error %d: %s", resp.StatusCode(), msg)
	}
}
