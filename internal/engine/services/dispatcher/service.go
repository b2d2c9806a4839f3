package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/notify/internal/engine/clients/logger"
	"github.com/w-h-a/notify/internal/engine/clients/webhook"
	"github.com/w-h-a/notify/internal/payload"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

type Service struct {
	webhook    webhook.Webhook
	logger     logger.Logger
	tracer     trace.Tracer
	deliveries metric.Int64Counter
	duration   metric.Float64Histogram
}

// Dispatch performs one delivery of event to url and reports its outcome
// through the logger exactly once. It never fails; the result is
// informational.
func (s *Service) Dispatch(ctx context.Context, event string, url string, p payload.Payload) webhook.Result {
	id := uuid.NewString()

	ctx, span := s.tracer.Start(ctx, "Dispatcher.Dispatch", trace.WithAttributes(
		attribute.String("event.name", event),
		attribute.String("webhook.url", url),
		attribute.String("delivery.id", id),
	))
	defer span.End()

	start := time.Now()

	result := s.webhook.Call(
		ctx,
		webhook.CallWithID(id),
		webhook.CallWithEvent(event),
		webhook.CallWithURL(url),
		webhook.CallWithPayload(p),
	)

	outcome := "success"
	if !result.Delivered() {
		outcome = "failure"
	}

	attrs := metric.WithAttributes(
		attribute.String("event.name", event),
		attribute.String("outcome", outcome),
	)
	s.deliveries.Add(ctx, 1, attrs)
	s.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	if result.StatusCode > 0 {
		span.SetAttributes(attribute.Int("http.status_code", result.StatusCode))
	}

	s.report(ctx, span, result)

	return result
}

func (s *Service) report(ctx context.Context, span trace.Span, result webhook.Result) {
	var details map[string]any
	if result.StatusCode > 0 {
		details = map[string]any{
			"status":     result.StatusCode,
			"statusText": result.StatusText,
		}
	}

	switch {
	case result.StatusCode >= 400:
		span.SetStatus(codes.Error, "webhook returned error status")
		s.logger.Log(ctx, logger.Error, fmt.Sprintf("error calling webhook %s", result.URL), details)
	case result.Err != nil:
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
		s.logger.Log(ctx, logger.Error, result.Err.Error(), details)
	default:
		span.SetStatus(codes.Ok, "webhook delivered")
		s.logger.Log(ctx, logger.Info, fmt.Sprintf("successfully called webhook %s", result.URL), details)
	}
}

func New(w webhook.Webhook, l logger.Logger) *Service {
	meter := otel.Meter("dispatcher-service")

	deliveries, err := meter.Int64Counter(
		"webhook.deliveries",
		metric.WithDescription("Webhook delivery attempts by outcome"),
	)
	if err != nil {
		slog.ErrorContext(context.Background(), "failed to create deliveries counter", "error", err)
		deliveries = noop.Int64Counter{}
	}

	duration, err := meter.Float64Histogram(
		"webhook.delivery.duration",
		metric.WithDescription("Webhook delivery attempt duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		slog.ErrorContext(context.Background(), "failed to create delivery duration histogram", "error", err)
		duration = noop.Float64Histogram{}
	}

	return &Service{
		webhook:    w,
		logger:     l,
		tracer:     otel.Tracer("dispatcher-service"),
		deliveries: deliveries,
		duration:   duration,
	}
}
