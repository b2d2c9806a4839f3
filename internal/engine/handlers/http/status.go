package http

import (
	"context"
	"net/http"

	"github.com/w-h-a/notify/internal/engine/config"
)

type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

type Status struct {
	checks map[string]HealthChecker
}

func (s *Status) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := reqToCtx(r)

	code := http.StatusOK
	health := map[string]string{}

	for name, check := range s.checks {
		if err := check.CheckHealth(ctx); err != nil {
			code = http.StatusServiceUnavailable
			health[name] = err.Error()
			continue
		}
		health[name] = "ok"
	}

	status := map[string]any{
		"env":     config.Env(),
		"name":    config.Name(),
		"version": config.Version(),
		"health":  health,
	}

	wrtRsp(w, code, status)
}

func NewStatusHandler(checks map[string]HealthChecker) *Status {
	return &Status{
		checks: checks,
	}
}
