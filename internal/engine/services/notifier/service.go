package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"github.com/w-h-a/notify/internal/engine/clients/webhook"
	"github.com/w-h-a/notify/internal/payload"
	"github.com/w-h-a/notify/internal/site"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, event string, url string, p payload.Payload) webhook.Result
}

// Report is the settled outcome of one Notify call, in registration order.
type Report struct {
	Event   string
	Results []webhook.Result
}

func (r Report) Attempts() int {
	return len(r.Results)
}

func (r Report) Delivered() int {
	n := 0
	for _, result := range r.Results {
		if result.Delivered() {
			n++
		}
	}
	return n
}

type Service struct {
	dispatcher Dispatcher
	sites      sites.Sites
	tracer     trace.Tracer
}

// Notify delivers event to every webhook the site registers for it and
// returns once all attempts have settled. Delivery failures are logged by
// the dispatcher and never surface here.
func (s *Service) Notify(ctx context.Context, st any, event string, data any) Report {
	report := Report{Event: event}

	urls := site.Webhooks(st, event)
	if len(urls) == 0 {
		return report
	}

	ctx, span := s.tracer.Start(ctx, "Notifier.Notify", trace.WithAttributes(
		attribute.String("event.name", event),
		attribute.Int("webhook.count", len(urls)),
	))
	defer span.End()

	p := payload.From(data)

	report.Results = make([]webhook.Result, len(urls))

	var wg sync.WaitGroup

	for i, entry := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			report.Results[i] = s.dispatcher.Dispatch(ctx, event, url, p)
		}(i, urlOf(entry))
	}

	wg.Wait()

	span.SetAttributes(attribute.Int("webhook.delivered", report.Delivered()))
	span.SetStatus(codes.Ok, "dispatch round settled")

	return report
}

// NotifyAsync starts Notify and returns a channel that receives its report
// once and is then closed.
func (s *Service) NotifyAsync(ctx context.Context, st any, event string, data any) <-chan Report {
	done := make(chan Report, 1)

	go func() {
		defer close(done)
		done <- s.Notify(ctx, st, event, data)
	}()

	return done
}

// NotifySite looks the site up in the store before notifying. Only lookup
// failures are returned.
func (s *Service) NotifySite(ctx context.Context, siteID string, event string, data any) (Report, error) {
	st, err := s.ReadSite(ctx, siteID)
	if err != nil {
		return Report{Event: event}, err
	}

	return s.Notify(ctx, st, event, data), nil
}

func (s *Service) ReadSite(ctx context.Context, siteID string) (any, error) {
	if s.sites == nil {
		return nil, sites.ErrSiteNotFound
	}

	return s.sites.Read(ctx, siteID)
}

func (s *Service) ListSites(ctx context.Context) ([]string, error) {
	if s.sites == nil {
		return []string{}, nil
	}

	return s.sites.List(ctx)
}

func (s *Service) WriteSite(ctx context.Context, siteID string, doc any) error {
	if s.sites == nil {
		return sites.ErrReadOnly
	}

	return s.sites.Write(ctx, siteID, doc)
}

func (s *Service) CheckHealth(ctx context.Context) error {
	if s.sites == nil {
		return nil
	}

	return s.sites.CheckHealth(ctx)
}

func urlOf(entry any) string {
	if url, ok := entry.(string); ok {
		return url
	}

	return fmt.Sprintf("%v", entry)
}

func New(d Dispatcher, store sites.Sites) *Service {
	return &Service{
		dispatcher: d,
		sites:      store,
		tracer:     otel.Tracer("notifier-service"),
	}
}
