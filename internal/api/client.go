package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/logsift/internal/query"
)

// Client talks to a logsift HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:7488"
	defaultUserAgent = "logsift/0.1"
	requestTimeout   = 30 * time.Second
	maxErrorBody     = 64 << 10
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL reports the server the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchLogs runs req on the server. Server-side failures come back as
// *query.Error carrying the server's message, so callers can treat local and
// remote errors alike.
func (c *Client) FetchLogs(ctx context.Context, req Request) (query.Result, error) {
	if c == nil {
		return query.Result{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	path, sourceParam := pathLogs, "path"
	if req.Folder {
		path, sourceParam = pathFolderLogs, "folder"
	}
	values.Set(sourceParam, req.Source)
	setIfPresent(values, "filter", req.Filter)
	setIfPresent(values, "level", req.Level)
	setIfPresent(values, "start", req.Start)
	setIfPresent(values, "end", req.End)

	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	var payload query.Result
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return query.Result{}, err
	}
	return payload, nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.doURL(ctx, &url.URL{Path: pathHealth}, nil)
}

func setIfPresent(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(path string, resp *http.Response) error {
	msg := fmt.Sprintf("api %s returned status %d", path, resp.StatusCode)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload ErrorResponse
	if json.Unmarshal(body, &payload) == nil && strings.TrimSpace(payload.Error) != "" {
		msg = payload.Error
	}
	return &query.Error{Kind: kindForStatus(resp.StatusCode), Msg: msg}
}

func kindForStatus(status int) query.Kind {
	switch status {
	case http.StatusBadRequest:
		return query.KindBadInput
	case http.StatusNotFound:
		return query.KindNotFound
	default:
		return query.KindIO
	}
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_bind %q: missing host", apiBind)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
