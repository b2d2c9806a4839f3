package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/w-h-a/notify/internal/engine/config"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
	"github.com/w-h-a/pkg/serverv2"
	httpserver "github.com/w-h-a/pkg/serverv2/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

func NewRouter(
	notifierService *notifier.Service,
	checks map[string]HealthChecker,
) *mux.Router {
	router := mux.NewRouter()

	httpStatus := NewStatusHandler(checks)
	router.Methods(http.MethodGet).Path("/status").HandlerFunc(httpStatus.GetStatus)

	httpSites := NewSitesHandler(notifierService)
	router.Methods(http.MethodGet).Path("/sites").HandlerFunc(httpSites.GetSites)
	router.Methods(http.MethodPut).Path("/sites/{site}").HandlerFunc(httpSites.PutSite)
	router.Methods(http.MethodGet).Path("/sites/{site}/events/{event}/webhooks").HandlerFunc(httpSites.GetWebhooks)

	httpEvents := NewEventsHandler(notifierService)
	router.Methods(http.MethodPost).Path("/sites/{site}/events/{event}").HandlerFunc(httpEvents.PostEvent)

	return router
}

func NewServer(
	notifierService *notifier.Service,
	checks map[string]HealthChecker,
) serverv2.Server {
	// base server options
	opts := []serverv2.ServerOption{
		serverv2.ServerWithNamespace(config.Env()),
		serverv2.ServerWithName(config.Name()),
		serverv2.ServerWithVersion(config.Version()),
	}

	// create http router
	router := NewRouter(notifierService, checks)

	// create http server
	httpOpts := []serverv2.ServerOption{
		serverv2.ServerWithAddress(config.HttpAddress()),
	}

	httpOpts = append(httpOpts, opts...)

	httpServer := httpserver.NewServer(httpOpts...)

	handler := otelhttp.NewHandler(
		router,
		"",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string { return r.Method + " " + r.URL.Path }),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
		otelhttp.WithFilter(func(r *http.Request) bool { return r.URL.Path != "/status" }),
	)

	httpServer.Handle(handler)

	return httpServer
}
