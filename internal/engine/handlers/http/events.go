package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
)

type Events struct {
	parser   *Parser
	notifier *notifier.Service
}

// PostEvent starts delivery of the event and answers before any webhook
// has been called.
func (e *Events) PostEvent(w http.ResponseWriter, r *http.Request) {
	ctx := reqToCtx(r)

	siteId, err := e.parser.ParseSiteId(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	eventName, err := e.parser.ParseEventName(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	data, err := e.parser.ParseEventBody(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	st, err := e.notifier.ReadSite(ctx, siteId)
	if err != nil && errors.Is(err, sites.ErrSiteNotFound) {
		wrtRsp(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	} else if err != nil {
		wrtRsp(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	e.notifier.NotifyAsync(context.WithoutCancel(ctx), st, eventName, data)

	wrtRsp(w, http.StatusAccepted, map[string]any{"site": siteId, "event": eventName})
}

func NewEventsHandler(notifierService *notifier.Service) *Events {
	return &Events{
		parser:   &Parser{},
		notifier: notifierService,
	}
}
