package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/notify/internal/engine/clients/broker"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
	"github.com/w-h-a/notify/internal/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Notifier interface {
	NotifySite(ctx context.Context, siteID string, event string, data any) (notifier.Report, error)
}

type Service struct {
	name     string
	broker   broker.Broker
	notifier Notifier
	queues   map[string]int
	tracer   trace.Tracer
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Start(ch chan struct{}) error {
	for name, concurrency := range s.queues {
		for range concurrency {
			opts := []broker.SubscribeOption{
				broker.SubscribeWithQueue(name),
			}

			if err := s.broker.Subscribe(context.Background(), s.HandleEvent, opts...); err != nil {
				return err
			}
		}
	}

	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer shutdownCancel()

	if err := s.broker.Close(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "broker shutdown failed", "error", err)
	}

	return nil
}

// HandleEvent announces one queued event. Malformed messages and unknown
// sites are logged and dropped; delivery failures are the dispatcher's to
// report.
func (s *Service) HandleEvent(ctx context.Context, data []byte) error {
	ctx, span := s.tracer.Start(ctx, "Intake.HandleEvent", trace.WithAttributes(
		attribute.String("intake.name", s.name),
	))
	defer span.End()

	msg, err := event.Factory(data)
	if err != nil {
		span.SetStatus(codes.Error, "malformed event message")
		slog.ErrorContext(ctx, "dropping malformed event message", "intake", s.name, "error", err)
		return nil
	}

	span.SetAttributes(
		attribute.String("site.id", msg.Site),
		attribute.String("event.name", msg.Event),
	)

	report, err := s.notifier.NotifySite(ctx, msg.Site, msg.Event, msg.Payload)
	if err != nil {
		span.SetStatus(codes.Error, "site lookup failed")
		slog.ErrorContext(ctx, "dropping event for unreadable site", "site", msg.Site, "event", msg.Event, "error", err)
		return nil
	}

	span.SetStatus(codes.Ok, "event dispatched")
	slog.InfoContext(ctx, "event dispatched", "site", msg.Site, "event", msg.Event, "attempts", report.Attempts(), "delivered", report.Delivered())

	return nil
}

func (s *Service) CheckHealth(ctx context.Context) error {
	return s.broker.CheckHealth(ctx)
}

func New(b broker.Broker, n Notifier, qs map[string]int) *Service {
	name := fmt.Sprintf("intake-%s", strings.ReplaceAll(uuid.NewString(), "-", ""))

	return &Service{
		name:     name,
		broker:   b,
		notifier: n,
		queues:   qs,
		tracer:   otel.Tracer("intake-service"),
	}
}
