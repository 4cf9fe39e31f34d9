package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_sentiment_flow/internal/adapters/cache"
	"github.com/baditaflorin/go_sentiment_flow/internal/adapters/classifier"
	"github.com/baditaflorin/go_sentiment_flow/internal/adapters/logger"
	"github.com/baditaflorin/go_sentiment_flow/internal/adapters/repository/elastic"
	"github.com/baditaflorin/go_sentiment_flow/internal/config"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/analyze"
	"github.com/baditaflorin/go_sentiment_flow/internal/core/models"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
	"github.com/baditaflorin/go_sentiment_flow/pkg/normalizer"
)

// Default configuration
const (
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultConcurrency    = 0               // 0 means use GOMAXPROCS
)

var (
	cfg       *config.Config
	startedAt = time.Now()

	// Logger instance
	rawLogger l.Logger
	appLogger ports.Logger

	// One analyzer per registered model, keyed by model name
	analyzers    map[string]*analyze.Analyzer
	defaultModel string

	// Persistence; nil when the document store is unavailable
	results  ports.ResultRepository
	sessions ports.SessionRepository

	// Optional classification cache
	resultCache ports.ResultCache
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg = config.Load()

	// Parse command-line flags; server tuning stays on flags, service
	// wiring comes from the environment.
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform pipeline warm-up on startup")
	flag.Parse()

	// Set up logger
	var err error
	rawLogger, err = logger.NewServiceLogger(cfg.LogFile, cfg.JSONLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer rawLogger.Close()
	appLogger = logger.FromExisting(rawLogger)

	appLogger.Info("Starting sentiment HTTP server",
		"port", cfg.Port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"default_model", cfg.DefaultModel,
	)

	initAdapters()
	initAnalyzers(*warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		appLogger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			appLogger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	addr := ":" + cfg.Port
	appLogger.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		appLogger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	appLogger.Info("Server stopped")
}

// initAdapters connects the persistence and cache adapters. The document
// store and cache are optional collaborators: when either is unreachable
// the server still serves analysis requests, it only loses history and
// caching.
func initAdapters() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := elastic.NewStore(ctx, []string{cfg.ElasticsearchURL}, appLogger)
	if err != nil {
		appLogger.Warn("Document store unavailable, history disabled",
			"url", cfg.ElasticsearchURL,
			"error", err,
		)
	} else {
		if err := store.EnsureIndices(ctx); err != nil {
			appLogger.Error("Failed to ensure indices", "error", err)
		}
		results = elastic.NewResultRepository(store)
		sessions = elastic.NewSessionRepository(store)
	}

	if cfg.RedisURL != "" {
		redisCache, err := cache.New(ctx, cfg.RedisURL, cfg.CacheTTL, appLogger)
		if err != nil {
			appLogger.Warn("Result cache unavailable, continuing without",
				"error", err,
			)
		} else {
			resultCache = redisCache
		}
	}
}

// initAnalyzers builds one analyzer per registered model: a normalizer
// tuned to the model's preprocessing profile plus the shared inference
// client.
func initAnalyzers(warmUp bool) {
	inference, err := classifier.NewHTTPClient(classifier.Config{
		BaseURL:    cfg.InferenceURL,
		Token:      cfg.InferenceToken,
		Timeout:    cfg.InferenceTimeout,
		RetryCount: cfg.InferenceRetries,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize inference client", "error", err)
		os.Exit(1)
	}

	defaultModel = models.ProfileFor(cfg.DefaultModel).Name
	analyzers = make(map[string]*analyze.Analyzer)

	for _, profile := range models.All() {
		opts := []normalizer.Option{
			normalizer.WithLogger(rawLogger),
			normalizer.WithMaxLength(cfg.TextMaxLength),
		}
		if warmUp && profile.Name == defaultModel {
			opts = append(opts, normalizer.WithWarmUp(true))
		}

		norm, err := normalizer.ForModel(profile.Name, opts...)
		if err != nil {
			appLogger.Error("Failed to initialize normalizer",
				"model", profile.Name,
				"error", err,
			)
			os.Exit(1)
		}

		analyzerOpts := []analyze.Option{analyze.WithLogger(appLogger)}
		if resultCache != nil {
			analyzerOpts = append(analyzerOpts, analyze.WithCache(resultCache))
		}
		analyzers[profile.Name] = analyze.New(profile, norm, inference, analyzerOpts...)
	}

	appLogger.Info("Analyzers initialized successfully",
		"models", len(analyzers),
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "SentimentFlow")

	path := string(ctx.Path())
	switch {
	case path == "/health":
		handleHealthCheck(ctx)
	case path == "/api/v1/sentiment/analyze":
		handleAnalyze(ctx)
	case path == "/api/v1/sentiment/analyze/batch":
		handleAnalyzeBatch(ctx)
	case path == "/api/v1/sentiment/models":
		handleListModels(ctx)
	case strings.HasPrefix(path, "/api/v1/history/results/"):
		handleSessionResults(ctx, strings.TrimPrefix(path, "/api/v1/history/results/"))
	case path == "/api/v1/history/recent":
		handleRecentResults(ctx)
	case path == "/api/v1/history/sessions/active":
		handleActiveSessions(ctx)
	case path == "/api/v1/history/stats/sentiment":
		handleSentimentStats(ctx)
	case path == "/api/v1/history/stats/models":
		handleModelStats(ctx)
	case path == "/api/v1/history/stats/confidence":
		handleConfidenceStats(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	appLogger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"ip", clientIP(ctx),
		"duration", duration,
	)
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		appLogger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		appLogger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// clientIP resolves the client address, honoring proxy headers.
func clientIP(ctx *fasthttp.RequestCtx) string {
	if forwarded := string(ctx.Request.Header.Peek("X-Forwarded-For")); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	if realIP := string(ctx.Request.Header.Peek("X-Real-IP")); realIP != "" {
		return realIP
	}
	return ctx.RemoteIP().String()
}
