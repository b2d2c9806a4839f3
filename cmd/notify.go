package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"
	"github.com/w-h-a/notify/internal/engine"
	"github.com/w-h-a/notify/internal/engine/config"
)

func Notify(ctx *cli.Context) error {
	// cfg
	config.New()

	// payload
	var data any

	if raw := ctx.String("data-json"); len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return fmt.Errorf("invalid --data-json: %w", err)
		}
	} else if ctx.IsSet("data") {
		data = ctx.String("data")
	}

	// clients
	sitesClient := engine.NewSites()
	defer sitesClient.Close(context.Background())

	notifierService := engine.NewNotifier(
		engine.NewWebhook(),
		engine.NewLogger(),
		sitesClient,
	)

	// use service
	report, err := notifierService.NotifySite(ctx.Context, ctx.String("site"), ctx.String("event"), data)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx.Context, "event dispatched", "site", ctx.String("site"), "event", report.Event, "attempts", report.Attempts(), "delivered", report.Delivered())

	return nil
}
