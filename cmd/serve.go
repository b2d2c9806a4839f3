package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/w-h-a/notify/internal/engine"
	"github.com/w-h-a/notify/internal/engine/config"
	"github.com/w-h-a/notify/internal/telemetry"
)

func Serve(ctx *cli.Context) error {
	// cfg
	config.New()

	// telemetry
	shutdown, err := telemetry.Setup(
		ctx.Context,
		telemetry.WithName(config.Name()),
		telemetry.WithVersion(config.Version()),
		telemetry.WithEnv(config.Env()),
		telemetry.WithTracesAddress(config.TracesAddress()),
		telemetry.WithMetricsAddress(config.MetricsAddress()),
	)
	if err != nil {
		slog.ErrorContext(ctx.Context, "failed to set up telemetry", "error", err)
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shut down telemetry", "error", err)
		}
	}()

	// clients
	sitesClient := engine.NewSites()

	brokerClient := engine.NewBroker()

	webhookClient := engine.NewWebhook()

	loggerClient := engine.NewLogger()

	// server + services
	httpServer, _, i := engine.Factory(
		webhookClient,
		loggerClient,
		sitesClient,
		brokerClient,
	)

	// wait group and error chan
	wg := &sync.WaitGroup{}
	ch := make(chan error, 2)

	// start intake
	intakeStop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.InfoContext(ctx.Context, "starting intake", "name", i.Name())
		ch <- i.Start(intakeStop)
	}()

	// start http server
	go func() {
		slog.InfoContext(ctx.Context, "starting http server", "address", config.HttpAddress())
		ch <- httpServer.Start()
	}()

	// block
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-ch:
		if err != nil {
			slog.ErrorContext(ctx.Context, "failed to start", "error", err)
		}
	case s := <-sig:
		slog.InfoContext(ctx.Context, "received signal", "signal", s.String())
	}

	// graceful shutdown
	slog.InfoContext(ctx.Context, "stopping...")

	close(intakeStop)

	wait := make(chan struct{})

	go func() {
		defer close(wait)
		wg.Wait()
	}()

	select {
	case <-wait:
	case <-time.After(30 * time.Second):
	}

	if err := sitesClient.Close(context.Background()); err != nil {
		slog.ErrorContext(ctx.Context, "failed to close sites store", "error", err)
	}

	slog.InfoContext(ctx.Context, "successfully stopped")

	return err
}
