package telemetry

import "context"

type Option func(o *Options)

type Options struct {
	Name           string
	Version        string
	Env            string
	TracesAddress  string
	MetricsAddress string
	Context        context.Context
}

func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

func WithEnv(env string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

func WithTracesAddress(addr string) Option {
	return func(o *Options) {
		o.TracesAddress = addr
	}
}

func WithMetricsAddress(addr string) Option {
	return func(o *Options) {
		o.MetricsAddress = addr
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
