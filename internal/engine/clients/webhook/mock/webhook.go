package mock

import (
	"context"

	testmock "github.com/stretchr/testify/mock"
	"github.com/w-h-a/notify/internal/engine/clients/webhook"
)

type mockWebhook struct {
	testmock.Mock
}

func (w *mockWebhook) Call(ctx context.Context, opts ...webhook.CallOption) webhook.Result {
	options := webhook.NewCallOptions(opts...)
	args := w.Called(ctx, options)

	result := args.Get(0).(webhook.Result)
	if len(result.URL) == 0 {
		result.URL = options.URL
	}
	if len(result.Event) == 0 {
		result.Event = options.Event
	}
	result.ID = options.ID

	return result
}

func NewWebhook(opts ...webhook.Option) *mockWebhook {
	return &mockWebhook{}
}
