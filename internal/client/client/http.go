package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fusion-condo/fusion/internal/client/models"
	"github.com/fusion-condo/fusion/internal/client/tokenstore"
	"github.com/fusion-condo/fusion/internal/common"
	"github.com/fusion-condo/fusion/internal/logging"
	"github.com/fusion-condo/fusion/internal/metrics"
	"github.com/fusion-condo/fusion/internal/netx"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const uploadEndpoint = "/upload"

var publicPrefixes = []string{"/auth", "/components/pwa"}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	store      tokenstore.Store
	logger     logging.Logger
	metrics    metrics.Recorder
	limiter    *rate.Limiter
	requestID  func() string

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// New builds a client for the backend at baseURL. An empty baseURL means
// same-origin: request URLs are the bare endpoint paths. A previously
// persisted token is picked up from the store right away.
func New(ctx context.Context, baseURL string, opts Options) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
		}
	}

	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: opts.HTTPClient,
		store:      opts.Store,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		requestID:  uuid.NewString,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.store == nil {
		c.store = tokenstore.NewMemoryStore()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.metrics == nil {
		c.metrics = metrics.Nop{}
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(opts.RateLimit, burst)
	}

	c.loadToken(ctx)
	return c, nil
}

// SetToken replaces the session token and mirrors it to the store: a
// non-empty token is written, an empty one removes the stored value.
// Storage failures are logged and otherwise ignored.
func (c *HTTPClient) SetToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	var err error
	if token != "" {
		err = c.store.Save(ctx, token)
	} else {
		err = c.store.Remove(ctx)
	}
	if err != nil {
		c.logger.Warn(ctx, "token storage unavailable", "error", err)
	}
}

// Token returns the current session token, consulting the store when none
// is held in memory.
func (c *HTTPClient) Token(ctx context.Context) string {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		return token
	}
	return c.loadToken(ctx)
}

func (c *HTTPClient) loadToken(ctx context.Context) string {
	saved, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn(ctx, "token storage unavailable", "error", err)
		return ""
	}
	if saved == "" {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		c.token = saved
	}
	return c.token
}

func isPublic(endpoint string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(endpoint, p) {
			return true
		}
	}
	return false
}

// routeLabel collapses an endpoint to a low-cardinality metrics label:
// "/api/users/7?x=1" becomes "/api/users", "/auth/login" becomes "/auth".
func routeLabel(endpoint string) string {
	path, _, _ := strings.Cut(endpoint, "?")
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if segs[0] == "api" && len(segs) > 1 {
		return "/api/" + segs[1]
	}
	return "/" + segs[0]
}

// Request sends a JSON request to endpoint and returns the raw JSON answer.
// body, when non-nil, is JSON-encoded. An empty 2xx body yields nil.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, body any, opts ...RequestOption) (json.RawMessage, error) {
	rc := requestConfig{header: http.Header{}}
	for _, opt := range opts {
		opt(&rc)
	}

	token := c.Token(ctx)
	if token == "" && !rc.public && !isPublic(endpoint) {
		c.metrics.RecordRejectedWithoutToken(routeLabel(endpoint))
		return nil, ErrNoToken
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range rc.header {
		req.Header[k] = v
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.do(ctx, req, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: "API Error", Status: resp.StatusCode, Body: netx.ReadErrorBody(resp.Body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("decode response from %s: invalid JSON", endpoint)
	}
	return json.RawMessage(raw), nil
}

// do sends req with the request id attached, honouring the rate limit, and
// records the outcome.
func (c *HTTPClient) do(ctx context.Context, req *http.Request, endpoint string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	route := routeLabel(endpoint)
	log := c.logger.With("request_id", reqID, "method", req.Method, "endpoint", endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.RecordTransportError(req.Method, route)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn(ctx, "api request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	c.metrics.RecordRequest(req.Method, route, resp.StatusCode, elapsed)
	log.Debug(ctx, "api request", "status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return c.acceptAuth(ctx, raw)
}

// Register creates an account; role falls back to models.DefaultRegisterRole.
func (c *HTTPClient) Register(ctx context.Context, email, password, fullName, role string) (*models.AuthResponse, error) {
	if role == "" {
		role = models.DefaultRegisterRole
	}
	raw, err := c.Request(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
		"role":      role,
	})
	if err != nil {
		return nil, err
	}
	return c.acceptAuth(ctx, raw)
}

// acceptAuth decodes an auth answer and adopts its token. An answer without
// a token clears the session.
func (c *HTTPClient) acceptAuth(ctx context.Context, raw json.RawMessage) (*models.AuthResponse, error) {
	res, err := DecodeAuthResponse(raw)
	if err != nil {
		return nil, err
	}
	c.SetToken(ctx, res.Token)
	return res, nil
}

// DecodeAuthResponse decodes a login or registration answer, keeping the raw
// payload alongside.
func DecodeAuthResponse(raw json.RawMessage) (*models.AuthResponse, error) {
	res := &models.AuthResponse{Raw: raw}
	if len(raw) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return res, nil
}

// CurrentUser asks the backend who the session belongs to. Without a token
// it answers {User: nil, Unauthenticated: true} and sends nothing.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	if c.Token(ctx) == "" {
		return &models.CurrentUser{Unauthenticated: true}, nil
	}

	raw, err := c.Request(ctx, http.MethodGet, "/me", nil)
	if err != nil {
		return nil, err
	}
	return normalizeCurrentUser(raw)
}

// normalizeCurrentUser accepts both {"user": {...}} and a bare user record.
func normalizeCurrentUser(raw json.RawMessage) (*models.CurrentUser, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return &models.CurrentUser{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, wrapped := probe["user"]; wrapped {
			var cu models.CurrentUser
			if err := json.Unmarshal(raw, &cu); err != nil {
				return nil, fmt.Errorf("decode current user: %w", err)
			}
			return &cu, nil
		}
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &models.CurrentUser{User: &u}, nil
}

// Logout forgets the token locally; the backend is not contacted.
func (c *HTTPClient) Logout(ctx context.Context) error {
	c.SetToken(ctx, "")
	return nil
}

func tablePath(table string) string {
	return "/api/" + url.PathEscape(table)
}

func (c *HTTPClient) Get(ctx context.Context, table string, params Params) (json.RawMessage, error) {
	endpoint := tablePath(table)
	if qs := params.Encode(); qs != "" {
		endpoint += "?" + qs
	}
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}

func (c *HTTPClient) Create(ctx context.Context, table string, data any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, tablePath(table), data)
}

func (c *HTTPClient) Update(ctx context.Context, table, id string, data any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, tablePath(table)+"/"+url.PathEscape(id), data)
}

func (c *HTTPClient) Delete(ctx context.Context, table, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, tablePath(table)+"/"+url.PathEscape(id), nil)
}

// UploadFile posts r as the multipart field "file". The bearer token is
// attached when present; the backend decides whether anonymous uploads are
// allowed.
func (c *HTTPClient) UploadFile(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	body, contentType, err := netx.MultipartFile("file", filename, r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadEndpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if token := c.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.do(ctx, req, uploadEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Op: "Upload failed", Status: resp.StatusCode, Body: netx.ReadErrorBody(resp.Body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	res := &models.UploadResult{Raw: raw}
	if err := json.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return res, nil
}
