package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"resume-ats/internal/bootstrap"
	"resume-ats/internal/queue"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/workerproc"
)

const (
	defaultVisibilitySeconds  = 1200
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
	longPollSeconds           = 20
)

func main() {
	cfg := config.Load()
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		telemetry.Error("worker.config_invalid", map[string]any{"reason": "SQS_QUEUE_URL is required"})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("worker.bootstrap_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
		telemetry.Sync()
	}()

	api, err := queue.NewSQSAPI(ctx, cfg.AWSRegion)
	if err != nil {
		telemetry.Error("worker.sqs_init_failed", map[string]any{"error": err})
		return
	}

	consumer := newConsumer(api, cfg.SQSQueueURL, app.AnalysesService)
	consumer.Run(ctx)
}

func newConsumer(api queue.SQSAPI, queueURL string, p workerproc.Processor) *queue.Consumer {
	return &queue.Consumer{
		API:               api,
		QueueURL:          queueURL,
		Handler:           workerproc.NewHandler(p),
		Concurrency:       envInt("WORKER_CONCURRENCY", defaultWorkerConcurrency),
		VisibilitySeconds: int32(envInt("SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)),
		WaitSeconds:       longPollSeconds,
		ShutdownTimeout:   time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second,
	}
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		telemetry.Warn("worker.env_invalid", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}
