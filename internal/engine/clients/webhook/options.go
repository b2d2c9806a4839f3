package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/w-h-a/notify/internal/payload"
)

type Option func(o *Options)

type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	Context   context.Context
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}

type CallOption func(o *CallOptions)

type CallOptions struct {
	ID      string
	Event   string
	URL     string
	Payload payload.Payload
	Context context.Context
}

func CallWithID(id string) CallOption {
	return func(o *CallOptions) {
		o.ID = id
	}
}

func CallWithEvent(event string) CallOption {
	return func(o *CallOptions) {
		o.Event = event
	}
}

func CallWithURL(url string) CallOption {
	return func(o *CallOptions) {
		o.URL = url
	}
}

func CallWithPayload(p payload.Payload) CallOption {
	return func(o *CallOptions) {
		o.Payload = p
	}
}

func NewCallOptions(opts ...CallOption) CallOptions {
	options := CallOptions{
		Payload: payload.None{},
		Context: context.Background(),
	}

	for _, fn := range opts {
		fn(&options)
	}

	if options.Payload == nil {
		options.Payload = payload.None{}
	}

	return options
}
