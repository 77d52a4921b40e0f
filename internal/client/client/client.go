package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fusion-condo/fusion/internal/client/models"
	"github.com/fusion-condo/fusion/internal/client/tokenstore"
	"github.com/fusion-condo/fusion/internal/logging"
	"github.com/fusion-condo/fusion/internal/metrics"
	"golang.org/x/time/rate"
)

type Client interface {
	SetToken(ctx context.Context, token string)
	Token(ctx context.Context) string
	Request(ctx context.Context, method, endpoint string, body any, opts ...RequestOption) (json.RawMessage, error)

	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, password, fullName, role string) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.CurrentUser, error)
	Logout(ctx context.Context) error

	Get(ctx context.Context, table string, params Params) (json.RawMessage, error)
	Create(ctx context.Context, table string, data any) (json.RawMessage, error)
	Update(ctx context.Context, table, id string, data any) (json.RawMessage, error)
	Delete(ctx context.Context, table, id string) (json.RawMessage, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error)
}

// Options overrides the HTTPClient dependencies. Zero values pick defaults:
// http.DefaultClient, an in-memory token store, a discarding logger, no
// metrics and no rate limit.
type Options struct {
	HTTPClient *http.Client
	Store      tokenstore.Store
	Logger     logging.Logger
	Metrics    metrics.Recorder

	// RateLimit caps outbound requests per second; zero disables it.
	RateLimit rate.Limit
	Burst     int
}

// RequestOption adjusts a single Request call.
type RequestOption func(rc *requestConfig)

type requestConfig struct {
	header http.Header
	public bool
}

// WithHeader sets a request header. It overrides Content-Type, but a
// stored session token always wins over a caller's Authorization.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

// Public lets the call through without a session token, like the /auth
// endpoints. The bearer header is still sent when a token exists.
func Public() RequestOption {
	return func(rc *requestConfig) {
		rc.public = true
	}
}
