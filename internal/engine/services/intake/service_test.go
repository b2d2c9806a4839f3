package intake_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/notify/internal/engine/clients/broker"
	memorybroker "github.com/w-h-a/notify/internal/engine/clients/broker/memory"
	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"github.com/w-h-a/notify/internal/engine/services/intake"
	"github.com/w-h-a/notify/internal/engine/services/notifier"
	"github.com/w-h-a/notify/internal/event"
)

type mockNotifier struct {
	mock.Mock
}

func (n *mockNotifier) NotifySite(ctx context.Context, siteID string, event string, data any) (notifier.Report, error) {
	args := n.Called(ctx, siteID, event, data)
	return args.Get(0).(notifier.Report), args.Error(1)
}

func TestIntake_HandleEvent(t *testing.T) {
	if len(os.Getenv("INTEGRATION")) > 0 {
		t.Log("SKIPPING UNIT TEST")
		return
	}

	tests := []struct {
		name       string
		data       string
		notifyErr  error
		wantNotify bool
	}{
		{"well formed", `{"site":"blog","event":"publishPage","payload":{"a":"b"}}`, nil, true},
		{"unknown site", `{"site":"blog","event":"publishPage"}`, sites.ErrSiteNotFound, true},
		{"missing event", `{"site":"blog"}`, nil, false},
		{"malformed", `{"site":`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			n := &mockNotifier{}
			n.On("NotifySite", mock.Anything, "blog", "publishPage", mock.Anything).Return(notifier.Report{Event: "publishPage"}, tt.notifyErr)

			s := intake.New(memorybroker.NewBroker(), n, map[string]int{event.Queue: 1})

			// Act
			err := s.HandleEvent(context.Background(), []byte(tt.data))

			// Assert
			require.NoError(t, err)
			if tt.wantNotify {
				n.AssertNumberOfCalls(t, "NotifySite", 1)
			} else {
				n.AssertNotCalled(t, "NotifySite", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestIntake_Start(t *testing.T) {
	if len(os.Getenv("INTEGRATION")) > 0 {
		t.Log("SKIPPING UNIT TEST")
		return
	}

	// Arrange
	b := memorybroker.NewBroker()

	received := make(chan any, 1)

	n := &mockNotifier{}
	n.On("NotifySite", mock.Anything, "blog", "publishPage", mock.Anything).
		Run(func(args mock.Arguments) { received <- args.Get(3) }).
		Return(notifier.Report{Event: "publishPage"}, nil)

	s := intake.New(b, n, map[string]int{event.Queue: 2})

	stop := make(chan struct{})
	stopped := make(chan error, 1)

	go func() {
		stopped <- s.Start(stop)
	}()

	bs, err := json.Marshal(event.Message{Site: "blog", Event: "publishPage", Payload: "some-string"})
	require.NoError(t, err)

	// Act
	err = b.Publish(context.Background(), bs, broker.PublishWithQueue(event.Queue))
	require.NoError(t, err)

	// Assert
	select {
	case data := <-received:
		assert.Equal(t, "some-string", data)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	close(stop)

	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for shutdown")
	}

	assert.True(t, errors.Is(b.Publish(context.Background(), bs, broker.PublishWithQueue(event.Queue)), broker.ErrClosed))
}
