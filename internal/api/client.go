// Package api is the HTTP client for the pet-manager REST API. All outbound
// calls pass through Client, which owns bearer-token injection, transparent
// refresh on 401 with concurrent-request coalescing, and request/response
// logging. Endpoint functions (pets, tutors, auth, health) build the URLs
// and run every payload through package normalize before returning.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"petmanager/internal/common"
	"petmanager/internal/logging"
	"petmanager/internal/normalize"
	"petmanager/internal/session"
)

const (
	loginPath   = "/autenticacao/login"
	refreshPath = "/autenticacao/refresh"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 1 << 20
)

// Client wraps *http.Client with auth, refresh and normalization plumbing.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     logging.Logger

	// refresh coalesces concurrent token refreshes: one caller performs
	// the refresh call, every other 401-hit request waits on its result.
	refresh singleflight.Group

	onAuthExpired func()
}

// New builds a Client for the given base URL. A non-positive timeout falls
// back to the default.
func New(baseURL string, timeout time.Duration, sess *session.Store, log logging.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: empty base url")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
	}, nil
}

// OnAuthExpired registers a hook invoked when a refresh fails and the
// session has been cleared; the UI routes to the login entry point. The
// hook may fire once per request that lost the failed refresh.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request is a replayable outbound call: the body is held as bytes so the
// 401 retry can resend it unchanged.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// do sends the request with the current token. On 401 — unless the request
// is the login or refresh call itself — it joins the single-flight refresh
// and replays the request exactly once with the new token. A second 401
// after the replay passes through as an error; there is no further retry.
func (c *Client) do(ctx context.Context, req request) ([]byte, http.Header, error) {
	body, header, status, err := c.send(ctx, req, c.session.Token())
	if err != nil {
		return nil, nil, err
	}

	if status == http.StatusUnauthorized && req.path != loginPath && req.path != refreshPath {
		token, refreshErr := c.refreshToken(ctx)
		if refreshErr != nil {
			c.session.Reset()
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			return nil, nil, fmt.Errorf("token refresh: %w", refreshErr)
		}
		body, header, status, err = c.send(ctx, req, token)
		if err != nil {
			return nil, nil, err
		}
	}

	if status < 200 || status >= 300 {
		return nil, nil, newHTTPError(status, body)
	}
	return body, header, nil
}

// send performs one HTTP round trip. Transport failures are wrapped in
// common.ErrUnavailable; HTTP statuses are returned to the caller untouched.
func (c *Client) send(ctx context.Context, req request, token string) ([]byte, http.Header, int, error) {
	fullURL := c.baseURL + req.path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	var rd io.Reader
	if req.body != nil {
		rd = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, rd)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("api: new request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		ct := req.contentType
		if ct == "" {
			ct = "application/json"
		}
		httpReq.Header.Set("Content-Type", ct)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-Id", requestID)

	c.log.Debug(ctx, "api request", "method", req.method, "url", fullURL, "request_id", requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn(ctx, "api transport failure", "url", fullURL, "request_id", requestID, "error", err)
		return nil, nil, 0, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	c.log.Debug(ctx, "api response", "status", resp.StatusCode, "url", fullURL, "request_id", requestID)

	return raw, resp.Header, resp.StatusCode, nil
}

// refreshToken obtains a fresh access token, coalescing concurrent callers
// into a single refresh call.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		return c.performRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// performRefresh exchanges the stored refresh token for a new pair and
// stores it via the session store.
func (c *Client) performRefresh(ctx context.Context) (string, error) {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return "", common.ErrNoRefreshToken
	}

	payload, err := sonic.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", fmt.Errorf("marshal refresh request: %w", err)
	}

	body, _, status, err := c.send(ctx, request{
		method: http.MethodPut,
		path:   refreshPath,
		body:   payload,
	}, c.session.Token())
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", newHTTPError(status, body)
	}

	var data map[string]any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}

	token := normalize.StringField(data, "token", "accessToken", "access_token")
	if token == "" {
		return "", common.ErrTokenMissing
	}
	newRefresh := normalize.StringField(data, "refreshToken", "refresh_token", "refresh")

	c.session.UpdateToken(token, newRefresh)
	c.log.Info(ctx, "access token refreshed")
	return token, nil
}

// getAny GETs path and decodes the JSON payload into a generic value.
func (c *Client) getAny(ctx context.Context, path string, query url.Values) (any, error) {
	body, _, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return nil, err
	}
	return decodeAny(body)
}

// sendJSON marshals in (when non-nil), sends it and decodes the response.
func (c *Client) sendJSON(ctx context.Context, method, path string, in any) (any, error) {
	var body []byte
	if in != nil {
		var err error
		body, err = sonic.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}
	respBody, _, err := c.do(ctx, request{method: method, path: path, body: body})
	if err != nil {
		return nil, err
	}
	return decodeAny(respBody)
}

func (c *Client) deletePath(ctx context.Context, path string) error {
	_, _, err := c.do(ctx, request{method: http.MethodDelete, path: path})
	return err
}

// uploadPhoto POSTs the file as multipart form data. The file is encoded
// under three redundant field names (foto, file, image) to tolerate backend
// variance, and the response URL is probed across the known aliases.
func (c *Client) uploadPhoto(ctx context.Context, path, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range []string{"foto", "file", "image"} {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			return "", fmt.Errorf("multipart: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return "", fmt.Errorf("multipart: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}

	body, _, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        buf.Bytes(),
		contentType: writer.FormDataContentType(),
	})
	if err != nil {
		return "", err
	}

	raw, err := decodeAny(body)
	if err != nil {
		return "", err
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case map[string]any:
		return normalize.StringField(v, "url", "urlFoto", "fotoUrl", "path", "link"), nil
	default:
		return "", nil
	}
}

func decodeAny(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var v any
	if err := sonic.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
