package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/cache"
	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/cms/rest"
	"github.com/ansrdlabs/contentd/internal/config"
	logpkg "github.com/ansrdlabs/contentd/internal/logger"
	"github.com/ansrdlabs/contentd/internal/metrics"
	"github.com/ansrdlabs/contentd/internal/repository/cached"
	contentrepo "github.com/ansrdlabs/contentd/internal/repository/content"
	"github.com/ansrdlabs/contentd/internal/transport/brevo"
	chiTransport "github.com/ansrdlabs/contentd/internal/transport/chi"
	cataloguc "github.com/ansrdlabs/contentd/internal/usecase/catalog"
	feeduc "github.com/ansrdlabs/contentd/internal/usecase/feed"
	healthuc "github.com/ansrdlabs/contentd/internal/usecase/health"
	newsletteruc "github.com/ansrdlabs/contentd/internal/usecase/newsletter"
	searchuc "github.com/ansrdlabs/contentd/internal/usecase/search"
	statsuc "github.com/ansrdlabs/contentd/internal/usecase/stats"
	"github.com/ansrdlabs/contentd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting contentd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Bool("cms_configured", cfg.CMS.Endpoint() != ""),
	)

	// Create cache store based on driver
	var store cache.Store
	switch cfg.Cache.Driver {
	case "redis", "valkey":
		store, err = cache.NewRedis(cache.RedisConfig{
			Addrs:     cfg.Cache.Addrs,
			Password:  cfg.Cache.Password,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
	case "memory":
		store = cache.NewMemory()
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}
	defer store.Close()

	// Register content metrics explicitly (no init())
	metrics.RegisterContentMetrics()

	// CMS clients. An empty endpoint is a valid degradation state: every
	// content call yields empty results.
	cmsTimeout := time.Duration(cfg.CMS.RequestTimeout) * time.Second
	gqlClient := graphql.NewClient(graphql.Config{
		Endpoint: cfg.CMS.Endpoint(),
		Timeout:  cmsTimeout,
		Logger:   logger,
	})
	restClient := rest.NewClient(rest.Config{
		BaseURL: cfg.CMS.RESTURL,
		Timeout: cmsTimeout,
		Logger:  logger,
	})

	// Cached querier decorates the GraphQL client, then the repository.
	ttl := time.Duration(cfg.Cache.DefaultTTLSec) * time.Second
	querier := cached.New(gqlClient, store, ttl, metrics.ContentCacheTotal, logger)
	repo := contentrepo.New(querier)

	// Use case services
	catalogSvc := cataloguc.New(repo, restClient, logger)
	searchSvc := searchuc.New(repo, logger).WithPageSize(cfg.Search.PageSize)
	statsSvc := statsuc.New(repo, logger)
	feedSvc := feeduc.New(feeduc.Config{
		Timeout:          time.Duration(cfg.Feeds.FetchTimeoutSec) * time.Second,
		YouTubeChannelID: cfg.Feeds.YouTubeChannelID,
		MaxVideos:        cfg.Feeds.MaxVideos,
		Logger:           logger,
	})
	brevoClient := brevo.NewClient(brevo.Config{
		APIKey: cfg.Newsletter.BrevoAPIKey,
		ListID: cfg.Newsletter.BrevoListID,
		Logger: logger,
	})
	newsletterSvc := newsletteruc.New(brevoClient, logger)
	healthSvc := healthuc.New(store, repo)

	pdfProxy := chiTransport.NewPDFProxy(pdfHosts(cfg), logger)

	// Create chi server
	server := chiTransport.NewServer(
		catalogSvc, searchSvc, statsSvc, feedSvc, newsletterSvc, healthSvc, pdfProxy, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// pdfHosts builds the PDF proxy allowlist: configured extra hosts plus the
// hosts of the CMS endpoints.
func pdfHosts(cfg config.Config) []string {
	hosts := append([]string{}, cfg.CMS.PDFHosts...)
	for _, raw := range []string{cfg.CMS.GraphQLURL, cfg.CMS.RESTURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
		}
	}
	return hosts
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
