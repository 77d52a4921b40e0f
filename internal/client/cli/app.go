package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/fusion-condo/fusion/internal/cep"
	"github.com/fusion-condo/fusion/internal/client/client"
	"github.com/fusion-condo/fusion/internal/client/config"
	"github.com/fusion-condo/fusion/internal/client/localdb"
	"github.com/fusion-condo/fusion/internal/client/services"
	"github.com/fusion-condo/fusion/internal/client/tokenstore"
	"github.com/fusion-condo/fusion/internal/filex"
	"github.com/fusion-condo/fusion/internal/logging"
	"github.com/fusion-condo/fusion/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// addressLookup resolves postal codes; *cep.Client implements it.
type addressLookup interface {
	Lookup(ctx context.Context, code string) (*cep.Address, error)
}

// savedAtReporter is implemented by stores that remember when the token
// was written.
type savedAtReporter interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}

type App struct {
	config      *config.Config
	apiClient   client.Client
	authService services.AuthService
	userService services.UserService
	addresses   addressLookup
	store       tokenstore.Store
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	now         func() time.Time
	closers     []func() error
}

// NewApp wires the API client, token storage, services and optional
// metrics endpoint described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.Verbose)
	app := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}

	if c.Ephemeral {
		app.store = tokenstore.NewMemoryStore()
	} else {
		path, err := filex.EnsureParentDir(c.DatabasePath)
		if err != nil {
			return nil, err
		}
		db, err := localdb.InitDatabase(ctx, path)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", path, "error", err)
			return nil, err
		}
		app.store = tokenstore.NewSQLiteStore(db)
		app.closers = append(app.closers, db.Close)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	if c.MetricsAddr != "" {
		if err := app.serveMetrics(ctx, c.MetricsAddr, reg); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	httpClient := &http.Client{Timeout: c.RequestTimeout}
	apiClient, err := client.New(ctx, c.BaseURL, client.Options{
		HTTPClient: httpClient,
		Store:      app.store,
		Logger:     logger,
		Metrics:    collector,
		RateLimit:  rate.Limit(c.RateLimit),
		Burst:      1,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.apiClient = apiClient
	app.authService = services.NewAuthService(apiClient, logger)
	app.userService = services.NewUserService(apiClient, logger)
	app.addresses = cep.NewClient(httpClient, logger, "")
	return app, nil
}

func (a *App) serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "metrics server stopped", "error", err)
		}
	}()
	a.logger.Info(ctx, "serving metrics", "addr", ln.Addr().String())

	a.closers = append(a.closers, srv.Close)
	return nil
}

// Close releases the database and the metrics server.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run starts the REPL on stdin and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to Fusion CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.apiClient.Token(context.Background()) != ""
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "signed in"
	}
	return "guest"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
