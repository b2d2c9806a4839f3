package mock

import (
	"context"

	testmock "github.com/stretchr/testify/mock"
	"github.com/w-h-a/notify/internal/engine/clients/logger"
)

type mockLogger struct {
	testmock.Mock
}

func (l *mockLogger) Log(ctx context.Context, level logger.Level, msg string, details map[string]any) {
	l.Called(ctx, level, msg, details)
}

// CallsAt returns the recorded calls made with level.
func (l *mockLogger) CallsAt(level logger.Level) []testmock.Call {
	var out []testmock.Call
	for _, c := range l.Mock.Calls {
		if len(c.Arguments) > 1 && c.Arguments.Get(1) == level {
			out = append(out, c)
		}
	}

	return out
}

func NewLogger(opts ...logger.Option) *mockLogger {
	l := &mockLogger{}
	l.On("Log", testmock.Anything, testmock.Anything, testmock.Anything, testmock.Anything).Return()
	return l
}
