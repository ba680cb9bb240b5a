package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalog/internal/clock"
	"github.com/kailas-cloud/catalog/internal/config"
	dbRedis "github.com/kailas-cloud/catalog/internal/db/redis"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
	logpkg "github.com/kailas-cloud/catalog/internal/logger"
	"github.com/kailas-cloud/catalog/internal/metrics"
	itemrepo "github.com/kailas-cloud/catalog/internal/repository/item"
	"github.com/kailas-cloud/catalog/internal/repository/snapshot"
	chiTransport "github.com/kailas-cloud/catalog/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalog/internal/usecase/health"
	itemuc "github.com/kailas-cloud/catalog/internal/usecase/item"
	"github.com/kailas-cloud/catalog/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	ctx := context.Background()

	persister, closeStorage, err := openPersister(ctx, &cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStorage()

	items := itemrepo.New(persister, itemrepo.SeedConfig{
		Size: cfg.Seed.SampleSize,
		Seed: cfg.Seed.RandomSeed,
	})
	seeded, err := items.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load items", zap.Error(err))
	}
	if seeded {
		logger.Info("No snapshot found, generated sample catalog",
			zap.Int("items", items.Len()),
			zap.Int64("seed", cfg.Seed.RandomSeed),
		)
	} else {
		logger.Info("Restored item snapshot", zap.Int("items", items.Len()))
	}

	clk := clock.Real{}
	catalogSvc := cataloguc.New(items)
	itemSvc := itemuc.New(items, clk)
	healthSvc := healthuc.New(items, items)

	server := chiTransport.NewServer(catalogSvc, itemSvc, healthSvc, clk, chiTransport.Options{
		Limits: request.Limits{
			DefaultPageSize:     cfg.Query.DefaultPageSize,
			MaxPageSize:         cfg.Query.MaxPageSize,
			DefaultRelatedLimit: cfg.Query.DefaultRelatedLimit,
			MaxRelatedLimit:     cfg.Query.MaxRelatedLimit,
		},
		MaxBodyBytes: cfg.Limits.MaxBodyBytes,
		CreateRPS:    cfg.Limits.CreateRPS,
		CreateBurst:  cfg.Limits.CreateBurst,
	})

	handler := server.Handler(
		jsonRecoverer(logger),
		chiMiddleware.RequestID,
		wideEventMiddleware(logger),
		chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys),
		metrics.Middleware(),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

// openPersister picks the snapshot backend for the configured driver.
// The returned close func releases backend connections.
func openPersister(
	ctx context.Context,
	cfg *config.StorageConfig,
	logger *zap.Logger,
) (itemrepo.Persister, func(), error) {
	switch cfg.Driver {
	case config.DriverFile:
		logger.Info("Using file snapshot", zap.String("path", cfg.Path))
		return snapshot.NewFile(cfg.Path), func() {}, nil

	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis",
			zap.Strings("addrs", cfg.Addrs),
			zap.String("key", cfg.Key),
		)
		return snapshot.NewRedis(store, cfg.Key), store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns the JSON error envelope instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{Error: chiTransport.ErrorBody{
						Status:    http.StatusInternalServerError,
						Code:      chiTransport.ErrorCodeInternal,
						Message:   "Internal error.",
						Timestamp: time.Now().UTC().Format(time.RFC3339),
					}})
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
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
