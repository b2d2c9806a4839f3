package http

import (
	"errors"
	"net/http"

	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
	"github.com/w-h-a/notify/internal/site"
)

type Sites struct {
	parser   *Parser
	notifier *notifier.Service
}

func (s *Sites) GetSites(w http.ResponseWriter, r *http.Request) {
	ctx := reqToCtx(r)

	ids, err := s.notifier.ListSites(ctx)
	if err != nil {
		wrtRsp(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	if ids == nil {
		ids = []string{}
	}

	wrtRsp(w, http.StatusOK, ids)
}

func (s *Sites) GetWebhooks(w http.ResponseWriter, r *http.Request) {
	ctx := reqToCtx(r)

	siteId, err := s.parser.ParseSiteId(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	eventName, err := s.parser.ParseEventName(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	st, err := s.notifier.ReadSite(ctx, siteId)
	if err != nil && errors.Is(err, sites.ErrSiteNotFound) {
		wrtRsp(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	} else if err != nil {
		wrtRsp(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	webhooks := site.Webhooks(st, eventName)
	if webhooks == nil {
		webhooks = []any{}
	}

	wrtRsp(w, http.StatusOK, map[string]any{"site": siteId, "event": eventName, "webhooks": webhooks})
}

func (s *Sites) PutSite(w http.ResponseWriter, r *http.Request) {
	ctx := reqToCtx(r)

	siteId, err := s.parser.ParseSiteId(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	doc, err := s.parser.ParseSiteBody(ctx, r)
	if err != nil {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	err = s.notifier.WriteSite(ctx, siteId, doc)
	if err != nil && errors.Is(err, sites.ErrReadOnly) {
		wrtRsp(w, http.StatusConflict, map[string]any{"error": err.Error()})
		return
	} else if err != nil && errors.Is(err, sites.ErrEncodingSite) {
		wrtRsp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	} else if err != nil {
		wrtRsp(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	wrtRsp(w, http.StatusOK, map[string]any{"site": siteId})
}

func NewSitesHandler(notifierService *notifier.Service) *Sites {
	return &Sites{
		parser:   &Parser{},
		notifier: notifierService,
	}
}
