package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type ShutdownFunc func(ctx context.Context) error

// Setup installs the global tracer, meter and logger providers and makes
// the otel-bridged slog logger the process default. An empty address
// leaves that signal on the no-op provider.
func Setup(ctx context.Context, opts ...Option) (ShutdownFunc, error) {
	options := NewOptions(opts...)

	var shutdowns []ShutdownFunc

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(options.Name),
			semconv.ServiceVersion(options.Version),
			semconv.DeploymentEnvironment(options.Env),
		),
	)
	if err != nil {
		return shutdown, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// logs
	logExporter, err := stdoutlog.New()
	if err != nil {
		return shutdown, err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	shutdowns = append(shutdowns, lp.Shutdown)

	global.SetLoggerProvider(lp)

	slog.SetDefault(otelslog.NewLogger(options.Name, otelslog.WithLoggerProvider(lp)))

	// traces
	if len(options.TracesAddress) > 0 {
		traceExporter, err := otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpoint(options.TracesAddress),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return shutdown, err
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
		)
		shutdowns = append(shutdowns, tp.Shutdown)

		otel.SetTracerProvider(tp)
	}

	// metrics
	if len(options.MetricsAddress) > 0 {
		metricExporter, err := otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpoint(options.MetricsAddress),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return shutdown, err
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(15*time.Second))),
			sdkmetric.WithResource(res),
		)
		shutdowns = append(shutdowns, mp.Shutdown)

		otel.SetMeterProvider(mp)

		if err := host.Start(host.WithMeterProvider(mp)); err != nil {
			return shutdown, err
		}

		if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
			return shutdown, err
		}
	}

	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		slog.ErrorContext(context.Background(), "telemetry error", "error", err)
	}))

	return shutdown, nil
}
