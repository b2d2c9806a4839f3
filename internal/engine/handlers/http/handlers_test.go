package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mocklogger "github.com/w-h-a/notify/internal/engine/clients/logger/mock"
	"github.com/w-h-a/notify/internal/engine/clients/sites"
	memorysites "github.com/w-h-a/notify/internal/engine/clients/sites/memory"
	"github.com/w-h-a/notify/internal/engine/clients/webhook"
	mockwebhook "github.com/w-h-a/notify/internal/engine/clients/webhook/mock"
	"github.com/w-h-a/notify/internal/engine/config"
	httphandlers "github.com/w-h-a/notify/internal/engine/handlers/http"
	"github.com/w-h-a/notify/internal/engine/services/dispatcher"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
	"github.com/w-h-a/notify/internal/payload"
)

type failingCheck struct{}

func (failingCheck) CheckHealth(ctx context.Context) error {
	return errors.New("unreachable")
}

func newRouter(t *testing.T, store sites.Sites) (*mux.Router, chan webhook.CallOptions) {
	t.Helper()

	config.New()

	calls := make(chan webhook.CallOptions, 10)

	mockWebhook := mockwebhook.NewWebhook()
	mockWebhook.On("Call", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { calls <- args.Get(1).(webhook.CallOptions) }).
		Return(webhook.Result{StatusCode: 200, StatusText: "OK"})

	n := notifier.New(dispatcher.New(mockWebhook, mocklogger.NewLogger()), store)

	return httphandlers.NewRouter(n, map[string]httphandlers.HealthChecker{"sites": n}), calls
}

func blogStore() sites.Sites {
	return memorysites.NewSites(sites.WithSeed(map[string]any{
		"blog": map[string]any{
			"notify": map[string]any{
				"webhooks": map[string]any{"publishPage": []any{"http://hooks.test/a"}},
			},
		},
	}))
}

func TestHandlers_GetStatus(t *testing.T) {
	if len(os.Getenv("INTEGRATION")) > 0 {
		t.Log("SKIPPING UNIT TEST")
		return
	}

	t.Run("healthy", func(t *testing.T) {
		// Arrange
		router, _ := newRouter(t, blogStore())

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		rsp := httptest.NewRecorder()

		// Act
		router.ServeHTTP(rsp, req)

		// Assert
		require.Equal(t, http.StatusOK, rsp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rsp.Body.Bytes(), &body))
		assert.Equal(t, config.Name(), body["name"])
		assert.Equal(t, map[string]any{"sites": "ok"}, body["health"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		// Arrange
		config.New()

		router := httphandlers.NewRouter(nil, map[string]httphandlers.HealthChecker{"broker": failingCheck{}})

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		rsp := httptest.NewRecorder()

		// Act
		router.ServeHTTP(rsp, req)

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rsp.Code)
		assert.Contains(t, rsp.Body.String(), "unreachable")
	})
}

func TestHandlers_PostEvent(t *testing.T) {
	if len(os.Getenv("INTEGRATION")) > 0 {
		t.Log("SKIPPING UNIT TEST")
		return
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		want        payload.Payload
	}{
		{"json body", "application/json", `{"a":"b"}`, payload.JSON{Value: map[string]any{"a": "b"}}},
		{"json string body", "application/json; charset=utf-8", `"some-string"`, payload.Text("some-string")},
		{"text body", "text/plain", "some-string", payload.Text("some-string")},
		{"empty body", "", "", payload.None{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, calls := newRouter(t, blogStore())

			req := httptest.NewRequest(http.MethodPost, "/sites/blog/events/publishPage", strings.NewReader(tt.body))
			if len(tt.contentType) > 0 {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rsp := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rsp, req)

			// Assert
			require.Equal(t, http.StatusAccepted, rsp.Code)
			assert.JSONEq(t, `{"site":"blog","event":"publishPage"}`, rsp.Body.String())

			select {
			case opts := <-calls:
				assert.Equal(t, "http://hooks.test/a", opts.URL)
				assert.Equal(t, "publishPage", opts.Event)
				assert.Equal(t, tt.want, opts.Payload)
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for delivery")
			}
		})
	}
}

func TestHandlers_PostEvent_Errors(t *testing.T) {
	if len(os.Getenv("INTEGRATION")) > 0 {
		t.Log("SKIPPING UNIT TEST")
		return
	}

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		wantCode    int
	}{
		{"unknown site", "/sites/missing/events/publishPage", "", "", http.StatusNotFound},
		{"malformed json", "/sites/blog/events/publishPage", "application/json", `{"a":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, calls := newRouter(t, blogStore())

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if len(tt.contentType) > 0 {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rsp := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rsp, req)

			// Assert
			assert.Equal(t, tt.wantCode, rsp.Code)
			assert.Empty(t, calls)
		})
	}
}

func TestHandlers_Sites(t *testing.T) {
	if len(os.Getenv("INTEGRATION")) > 0 {
		t.Log("SKIPPING UNIT TEST")
		return
	}

	// Arrange
	router, _ := newRouter(t, memorysites.NewSites())

	put := httptest.NewRequest(http.MethodPut, "/sites/docs", strings.NewReader(`{"notify":{"webhooks":{"deploy":["http://hooks.test/x","http://hooks.test/y"]}}}`))
	putRsp := httptest.NewRecorder()

	// Act
	router.ServeHTTP(putRsp, put)

	getRsp := httptest.NewRecorder()
	router.ServeHTTP(getRsp, httptest.NewRequest(http.MethodGet, "/sites/docs/events/deploy/webhooks", nil))

	noneRsp := httptest.NewRecorder()
	router.ServeHTTP(noneRsp, httptest.NewRequest(http.MethodGet, "/sites/docs/events/other/webhooks", nil))

	listRsp := httptest.NewRecorder()
	router.ServeHTTP(listRsp, httptest.NewRequest(http.MethodGet, "/sites", nil))

	badRsp := httptest.NewRecorder()
	router.ServeHTTP(badRsp, httptest.NewRequest(http.MethodPut, "/sites/docs", strings.NewReader(`[1,2]`)))

	// Assert
	require.Equal(t, http.StatusOK, putRsp.Code)

	require.Equal(t, http.StatusOK, getRsp.Code)
	assert.JSONEq(t, `{"site":"docs","event":"deploy","webhooks":["http://hooks.test/x","http://hooks.test/y"]}`, getRsp.Body.String())

	require.Equal(t, http.StatusOK, noneRsp.Code)
	assert.JSONEq(t, `{"site":"docs","event":"other","webhooks":[]}`, noneRsp.Body.String())

	require.Equal(t, http.StatusOK, listRsp.Code)
	assert.JSONEq(t, `["docs"]`, listRsp.Body.String())

	assert.Equal(t, http.StatusBadRequest, badRsp.Code)
}
