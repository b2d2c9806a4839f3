package engine

import (
	"github.com/w-h-a/notify/internal/engine/clients/broker"
	memorybroker "github.com/w-h-a/notify/internal/engine/clients/broker/memory"
	"github.com/w-h-a/notify/internal/engine/clients/broker/rabbit"
	"github.com/w-h-a/notify/internal/engine/clients/logger"
	slogger "github.com/w-h-a/notify/internal/engine/clients/logger/slog"
	"github.com/w-h-a/notify/internal/engine/clients/sites"
	filesites "github.com/w-h-a/notify/internal/engine/clients/sites/file"
	memorysites "github.com/w-h-a/notify/internal/engine/clients/sites/memory"
	postgressites "github.com/w-h-a/notify/internal/engine/clients/sites/postgres"
	redissites "github.com/w-h-a/notify/internal/engine/clients/sites/redis"
	"github.com/w-h-a/notify/internal/engine/clients/webhook"
	httpwebhook "github.com/w-h-a/notify/internal/engine/clients/webhook/http"
	"github.com/w-h-a/notify/internal/engine/config"
	httphandlers "github.com/w-h-a/notify/internal/engine/handlers/http"
	"github.com/w-h-a/notify/internal/engine/services/dispatcher"
	"github.com/w-h-a/notify/internal/engine/services/intake"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
	"github.com/w-h-a/pkg/serverv2"
)

func NewSites() sites.Sites {
	opts := []sites.Option{
		sites.WithLocation(config.SitesLocation()),
	}

	switch sites.SitesTypes[config.Sites()] {
	case sites.File:
		return filesites.NewSites(opts...)
	case sites.Postgres:
		return postgressites.NewSites(opts...)
	case sites.Redis:
		return redissites.NewSites(opts...)
	default:
		return memorysites.NewSites(opts...)
	}
}

func NewBroker() broker.Broker {
	opts := []broker.Option{
		broker.WithLocation(config.BrokerLocation()),
		broker.WithDurable(config.BrokerDurable()),
	}

	switch broker.BrokerTypes[config.Broker()] {
	case broker.Rabbit:
		return rabbit.NewBroker(opts...)
	default:
		return memorybroker.NewBroker(opts...)
	}
}

func NewWebhook() webhook.Webhook {
	return httpwebhook.NewWebhook(
		webhook.WithTimeout(config.WebhookTimeout()),
	)
}

func NewLogger() logger.Logger {
	return slogger.NewLogger(
		logger.WithName(config.Name()),
	)
}

func NewNotifier(
	webhookClient webhook.Webhook,
	loggerClient logger.Logger,
	sitesClient sites.Sites,
) *notifier.Service {
	dispatcherService := dispatcher.New(webhookClient, loggerClient)

	return notifier.New(dispatcherService, sitesClient)
}

func Factory(
	webhookClient webhook.Webhook,
	loggerClient logger.Logger,
	sitesClient sites.Sites,
	brokerClient broker.Broker,
) (serverv2.Server, *notifier.Service, *intake.Service) {
	// services
	notifierService := NewNotifier(webhookClient, loggerClient, sitesClient)

	intakeService := intake.New(
		brokerClient,
		notifierService,
		config.EventQueues(),
	)

	// server
	httpServer := httphandlers.NewServer(
		notifierService,
		map[string]httphandlers.HealthChecker{
			"sites":  notifierService,
			"broker": intakeService,
		},
	)

	return httpServer, notifierService, intakeService
}
