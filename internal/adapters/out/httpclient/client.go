// Package httpclient is the JSON-over-HTTP transport shared by the clients of the
// collaborating services. It bounds every call with a timeout and maps transport and
// status failures onto the errs taxonomy:
//
//	no answer (timeout, refused, DNS)  -> errs.DownstreamUnavailableError
//	404                                -> errs.ObjectNotFoundError
//	409                                -> errs.ConflictError
//	502, 503, 504                      -> errs.DownstreamUnavailableError
//	any other non-2xx                  -> *StatusError
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foodorder/internal/pkg/errs"
)

const (
	// DefaultTimeout bounds a whole call including reading the body.
	DefaultTimeout = 5 * time.Second

	maxBodySize  = 1 << 20
	maxErrorBody = 512
)

// StatusError is a non-2xx answer that has no dedicated error type.
type StatusError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s %s: unexpected status %d: %s", e.Service, e.Method, e.Path, e.StatusCode, e.Body)
}

// Request describes one call. Resource and ID only label NotFound and Conflict errors.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     any
	Resource string
	ID       any
}

type Client struct {
	service string
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for the service reachable at baseURL. A non-positive timeout
// means DefaultTimeout.
func New(service, baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s base url: %w", service, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s base url %q must be absolute", service, baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		service: service,
		baseURL: u,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

func (c *Client) Service() string {
	return c.service
}

// Do performs req and decodes a 2xx JSON answer into out. out may be nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return errs.NewDownstreamUnavailableErrorWithCause(c.service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errs.NewDownstreamUnavailableErrorWithCause(c.service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(req, resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s %s: decode response: %w", c.service, req.Method, req.Path, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + req.Path
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s %s %s: encode request: %w", c.service, req.Method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

func (c *Client) statusError(req Request, code int, body []byte) error {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	cause := &StatusError{
		Service:    c.service,
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: code,
		Body:       text,
	}

	switch code {
	case http.StatusNotFound:
		return errs.NewObjectNotFoundErrorWithCause(req.Resource, req.ID, cause)
	case http.StatusConflict:
		return errs.NewConflictErrorWithCause(req.Resource, req.ID, cause)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errs.NewDownstreamUnavailableErrorWithCause(c.service, cause)
	default:
		return cause
	}
}
