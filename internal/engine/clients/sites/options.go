package sites

import (
	"context"
	"time"
)

type Option func(o *Options)

type Options struct {
	Location string
	Debounce time.Duration
	Seed     map[string]any
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

// WithDebounce sets how long the file store waits for writes to settle
// before reloading.
func WithDebounce(d time.Duration) Option {
	return func(o *Options) {
		o.Debounce = d
	}
}

func WithSeed(seed map[string]any) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Debounce: 200 * time.Millisecond,
		Context:  context.Background(),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
