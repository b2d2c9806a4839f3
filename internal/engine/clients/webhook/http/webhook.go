package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/w-h-a/notify/internal/engine/clients/webhook"
	"github.com/w-h-a/notify/internal/payload"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpWebhook struct {
	options webhook.Options
	client  *http.Client
}

func (w *httpWebhook) Call(ctx context.Context, opts ...webhook.CallOption) webhook.Result {
	options := webhook.NewCallOptions(opts...)

	result := webhook.Result{
		ID:    options.ID,
		Event: options.Event,
		URL:   options.URL,
	}

	if err := validateURL(options.URL); err != nil {
		result.Err = err
		return result
	}

	body, contentType, err := frame(options.Payload)
	if err != nil {
		result.Err = err
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, options.URL, body)
	if err != nil {
		result.Err = err
		return result
	}

	req.Header.Set(webhook.EventHeader, options.Event)
	if len(contentType) > 0 {
		req.Header.Set(webhook.ContentTypeHeader, contentType)
	}

	rsp, err := w.client.Do(req)
	if err != nil {
		result.Err = err
		return result
	}

	defer rsp.Body.Close()

	result.StatusCode = rsp.StatusCode
	result.StatusText = statusText(rsp)

	// the body is always consumed so the connection can be reused
	if err := drain(rsp.Body); err != nil {
		result.Err = err
	}

	return result
}

func frame(p payload.Payload) (io.Reader, string, error) {
	switch v := p.(type) {
	case payload.JSON:
		bs, err := json.Marshal(v.Value)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", webhook.ErrEncodingPayload, err)
		}
		return bytes.NewReader(bs), webhook.ContentTypeJSON, nil
	case payload.Text:
		return strings.NewReader(string(v)), webhook.ContentTypeText, nil
	default:
		return nil, "", nil
	}
}

func drain(r io.Reader) error {
	bs, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(bs)) == 0 {
		return nil
	}

	var discard any
	if err := json.Unmarshal(bs, &discard); err != nil {
		return fmt.Errorf("%w: %v", webhook.ErrDecodingResponse, err)
	}

	return nil
}

func statusText(rsp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(rsp.Status, strconv.Itoa(rsp.StatusCode)))
	if len(text) == 0 {
		text = http.StatusText(rsp.StatusCode)
	}

	return text
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w %q: %v", webhook.ErrInvalidURL, raw, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return fmt.Errorf("%w %q", webhook.ErrInvalidURL, raw)
	}

	return nil
}

func NewWebhook(opts ...webhook.Option) webhook.Webhook {
	options := webhook.NewOptions(opts...)

	base := options.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	w := &httpWebhook{
		options: options,
		client: &http.Client{
			Timeout:   options.Timeout,
			Transport: otelhttp.NewTransport(base),
		},
	}

	return w
}
