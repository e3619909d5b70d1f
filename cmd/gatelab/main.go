package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gatelab/internal/application/runner"
	"gatelab/internal/config"
	"gatelab/pkg/adapters/events/memory"
	"gatelab/pkg/adapters/gateway"
	"gatelab/pkg/adapters/metrics/prometheus"
	filesink "gatelab/pkg/adapters/sink/file"
	redissink "gatelab/pkg/adapters/sink/redis"
	"gatelab/pkg/api/http"
	"gatelab/pkg/api/websocket"
	"gatelab/pkg/ports"
	"gatelab/pkg/prompts"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting gateway experiment harness",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Load prompt library (built-in sets plus optional overlay)
	library, err := prompts.Load(cfg.Experiments.PromptsFile)
	if err != nil {
		logger.Error("failed to load prompt library", zap.Error(err))
		return 1
	}

	// Initialize gateway client
	client, err := gateway.NewClient(&gateway.Config{
		BaseURL:    cfg.Gateway.BaseURL,
		APIKey:     cfg.Gateway.APIKey,
		ProbeModel: cfg.AllModels()[0],
		Timeout:    cfg.Gateway.Timeout,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create gateway client", zap.Error(err))
		return 1
	}

	// Initialize report sink
	sink, cleanup, err := newSink(cfg, logger)
	if err != nil {
		logger.Error("failed to create report sink", zap.Error(err))
		return 1
	}
	defer cleanup()

	eventBus := memory.NewEventBus()
	defer func() { _ = eventBus.Close() }()

	metricsCollector := prometheus.NewCollector()

	r := runner.New(client, library, metricsCollector, eventBus, logger, runner.Options{
		OpenAIModels:    cfg.OpenAIModelList(),
		AnthropicModels: cfg.AnthropicModelList(),
		RequestPause:    cfg.Experiments.RequestPause,
		PerfRequests:    cfg.Experiments.PerfRequests,
		PerfPause:       cfg.Experiments.PerfPause,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional status server while the run is in flight
	if cfg.StatusPort > 0 {
		statusServer := http.NewServer(&http.Config{
			Port:   cfg.StatusPort,
			Runner: r,
			Logger: logger,
		})
		statusServer.SetupWebSocket(websocket.NewHandler(eventBus, logger))

		go func() {
			if err := statusServer.Start(); err != nil {
				logger.Error("status server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := statusServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("status server shutdown error", zap.Error(err))
			}
		}()
	}

	// A probe failure is fatal before any experiment starts and writes
	// nothing; a run that got past the probe always yields a report.
	report, location, runErr := r.Execute(ctx, sink, cfg.Gateway.BaseURL, cfg.AllModels())
	if report == nil {
		logger.Error("run failed", zap.Error(runErr))
		return 1
	}

	fmt.Println(runner.RenderSummary(report.Experiments))
	logger.Info("run finished",
		zap.String("run_id", report.RunID),
		zap.String("report", location),
		zap.Int("total_calls", report.Metadata.TotalCalls),
		zap.Int("successes", report.Metadata.Successes),
		zap.Int("failures", report.Metadata.Failures))

	if runErr != nil {
		logger.Error("run aborted early", zap.Error(runErr))
		return 1
	}
	return 0
}

// newSink builds the configured report sink and its cleanup function
func newSink(cfg *config.Config, logger *zap.Logger) (ports.ReportSink, func(), error) {
	switch cfg.Sink.Kind {
	case "redis":
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		cleanup := func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Redis close error", zap.Error(err))
			}
		}
		return redissink.NewReportSink(redisClient, cfg.Sink.ReportTTL, logger), cleanup, nil

	default:
		s, err := filesink.NewReportSink(cfg.Sink.OutputDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
