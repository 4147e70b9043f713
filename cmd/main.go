package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/relay/internal/adapters/http/api"
	"github.com/okian/relay/internal/adapters/http/site"
	"github.com/okian/relay/internal/adapters/http/swagger"
	"github.com/okian/relay/internal/adapters/upstream"
	service "github.com/okian/relay/internal/app"
	"github.com/okian/relay/internal/config"
	"github.com/okian/relay/internal/observability"
	"github.com/okian/relay/pkg/logger"
	"github.com/okian/relay/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	writeTimeoutSlack         = 5 * time.Second
	corsMaxAge                = 300
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Stderr.WriteString("relay: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		_ = logger.SetFormat("text")
		logger.Get().Warn(ctx, "invalid log_format; falling back to text", logger.String("log_format", cfg.LogFormat))
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
	)

	if cfg.OpenWeatherAPIKey == "" {
		log.Warn(ctx, "OPENWEATHER_API_KEY is not set; weather lookups will fail")
	}

	tracingOpts := []observability.Option{observability.WithOTLPEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		tracingOpts = append(tracingOpts, observability.WithInsecure())
	}
	tp, shutdownTracing, err := observability.SetupTracing(ctx, tracingOpts...)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error(ctx, "tracing shutdown failed", logger.Error(err))
		}
	}()

	svc := newService(cfg, tp, log)

	static, embedded, err := site.Handler(cfg.StaticDir)
	if err != nil {
		return err
	}
	if embedded {
		log.Warn(ctx, "static directory not found; serving bundled placeholder", logger.String("static_dir", cfg.StaticDir))
	}

	handler, err := newRouter(ctx, cfg, svc, static, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.UpstreamTimeout + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(ctx, "server stopped with error", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService wires the three upstream clients into the relay service.
func newService(cfg *config.Config, tp trace.TracerProvider, log logger.Logger) *service.Service {
	opts := []upstream.Option{
		upstream.WithTimeout(cfg.UpstreamTimeout),
		upstream.WithTracerProvider(tp),
		upstream.WithLogger(log.Named("upstream")),
	}
	return service.New(
		upstream.NewOpenWeather(cfg.WeatherBaseURL, cfg.OpenWeatherAPIKey, opts...),
		upstream.NewRestCountries(cfg.CountriesBaseURL, opts...),
		upstream.NewExchangeRate(cfg.ExchangeBaseURL, opts...),
		service.WithLogger(log.Named("service")),
	)
}

// newRouter assembles middleware, API, docs and static routes.
func newRouter(ctx context.Context, cfg *config.Config, deps api.Dependencies, static http.Handler, log logger.Logger) (http.Handler, error) {
	apiServer, err := api.NewServer(deps, log.Named("api"))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		api.RequestID,
		api.AccessLog(log.Named("http")),
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", api.HeaderRequestID},
			ExposedHeaders: []string{api.HeaderRequestID},
			MaxAge:         corsMaxAge,
		}),
	)

	swagger.Register(ctx, r)
	apiServer.Register(ctx, r)
	site.Register(ctx, r, static)
	return r, nil
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordGCPause(avgPauseMs)
	}
}
