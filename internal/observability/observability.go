// Package observability wires the process-wide slog logger. Output goes to
// stderr as text or JSON, or through an OpenTelemetry log pipeline when an
// OTLP collector is configured.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/processors/minsev"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// loggerName identifies this process in the emitted log records.
const loggerName = "rauncher"

// noopShutdown is returned for handlers with nothing to flush.
func noopShutdown(context.Context) error { return nil }

// Instrument installs the process-wide slog default logger for the given
// level and format ("text", "json" or "otlp"). The returned shutdown
// function flushes any buffered log records and must be called before the
// process exits.
func Instrument(ctx context.Context, level slog.Level, format string) (func(context.Context) error, error) {
	switch format {
	case "text":
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return noopShutdown, nil

	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return noopShutdown, nil

	case "otlp":
		exporter, err := newLogExporter(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating log exporter: %w", err)
		}

		provider := sdklog.NewLoggerProvider(
			sdklog.WithProcessor(
				minsev.NewLogProcessor(sdklog.NewBatchProcessor(exporter), severity(level)),
			),
		)

		slog.SetDefault(slog.New(otelslog.NewHandler(loggerName, otelslog.WithLoggerProvider(provider))))
		return provider.Shutdown, nil

	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

// newLogExporter selects the OTLP transport from the standard
// OTEL_EXPORTER_OTLP_PROTOCOL variable. Without a configured endpoint the
// records go to stdout, which keeps the pipeline inspectable locally.
func newLogExporter(ctx context.Context) (sdklog.Exporter, error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return stdoutlog.New()
	}

	switch os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL") {
	case "grpc":
		return otlploggrpc.New(ctx)
	default:
		return otlploghttp.New(ctx)
	}
}

// severity maps a slog level onto the minimum severity the otel pipeline
// lets through.
func severity(level slog.Level) minsev.Severity {
	switch {
	case level <= slog.LevelDebug:
		return minsev.SeverityDebug
	case level <= slog.LevelInfo:
		return minsev.SeverityInfo
	case level <= slog.LevelWarn:
		return minsev.SeverityWarn
	default:
		return minsev.SeverityError
	}
}
