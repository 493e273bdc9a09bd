// Package api implements the remote resource repositories over the
// subscription backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"

	"sprout/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Error is a non-2xx API response. Message carries the server's own message
// when it sent one; most store operations replace it with fixed copy, a few
// (address and child updates) pass it through.
type Error struct {
	Status  int
	Message string
}

// UserMessage exposes the server's message for the store operations that
// surface it verbatim instead of their fixed copy.
func (e *Error) UserMessage() string {
	return e.Message
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// envelope is the response unwrap convention: payloads ride on "data".
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Client is the configured HTTP client shared by every resource
// implementation: base URL, JSON headers, credentialed cookie auth, CSRF
// token mirroring and the default request timeout.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	csrfCookie string
	csrfHeader string
	logger     *slog.Logger
}

// Params holds dependencies for the API client, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient creates the shared API client from configuration.
func NewClient(params Params) (*Client, error) {
	base, err := url.Parse(params.Config.API.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse api base url")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: params.Config.API.Timeout,
			Jar:     jar,
		},
		csrfCookie: params.Config.API.CSRFCookie,
		csrfHeader: params.Config.API.CSRFHeader,
		logger:     params.Logger,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) (int, error) {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) (int, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do issues one request and decodes the data envelope into out. It returns
// the response status code so callers can branch on 201-style semantics.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	target := c.baseURL.JoinPath()
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return 0, errors.Wrapf(err, "parse request path %s", path)
	}
	target = target.ResolveReference(&url.URL{
		Path:     strings.TrimSuffix(target.Path, "/") + "/" + ref.Path,
		RawQuery: ref.RawQuery,
	})

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	// Mirror the CSRF cookie into its header, the way the backend expects
	// for cookie-authenticated mutating calls.
	if token := c.csrfToken(); token != "" {
		req.Header.Set(c.csrfHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.WithStack(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil {
			apiErr.Message = env.Message
		}
		c.logger.Warn("api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return resp.StatusCode, apiErr
	}

	if out == nil || len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decode response envelope")
	}
	if len(env.Data) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decode response payload")
	}

	return resp.StatusCode, nil
}

// csrfToken reads the named CSRF cookie from the jar for the base URL.
func (c *Client) csrfToken() string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == c.csrfCookie {
			return cookie.Value
		}
	}

	return ""
}

// queryArgs serializes a flat key/value map into "?k1=v1&k2=v2". An empty or
// nil map yields an empty string with no leading "?". Keys are emitted in
// sorted order so request paths are stable.
func queryArgs(args map[string]string) string {
	if len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteByte('?')
	for i, key := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(args[key]))
	}

	return sb.String()
}
