package webhook

import (
	"context"
	"net/http"
)

type WebhookType string

const (
	HTTP WebhookType = "http"
)

var (
	WebhookTypes = map[string]WebhookType{
		"http": HTTP,
	}
)

const (
	EventHeader       = "X-Event"
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
	ContentTypeText   = "text/plain"
)

// Result is the outcome of one attempt. StatusCode is zero when no
// response was received.
type Result struct {
	ID         string
	Event      string
	URL        string
	StatusCode int
	StatusText string
	Err        error
}

func (r Result) Delivered() bool {
	return r.Err == nil && r.StatusCode > 0 && r.StatusCode < http.StatusBadRequest
}

type Webhook interface {
	Call(ctx context.Context, opts ...CallOption) Result
}
