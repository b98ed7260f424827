//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// ---- Mock TelemetryClient ----

type MockTelemetryClient struct {
	mu sync.Mutex

	PositionFunc  func(ctx context.Context) (*model.Position, model.RemoteResult, error)
	CrewFunc      func(ctx context.Context) (*model.Crew, model.RemoteResult, error)
	PassTimesFunc func(ctx context.Context, at model.GeoPoint) (*model.PassTimes, model.RemoteResult, error)

	Calls struct {
		Position  int
		Crew      int
		PassTimes []model.GeoPoint
	}
}

var _ adapter.TelemetryClient = (*MockTelemetryClient)(nil)

func (m *MockTelemetryClient) Position(ctx context.Context) (*model.Position, model.RemoteResult, error) {
	m.mu.Lock()
	m.Calls.Position++
	m.mu.Unlock()
	if m.PositionFunc != nil {
		return m.PositionFunc(ctx)
	}
	return nil, model.RemoteResult{}, nil
}

func (m *MockTelemetryClient) Crew(ctx context.Context) (*model.Crew, model.RemoteResult, error) {
	m.mu.Lock()
	m.Calls.Crew++
	m.mu.Unlock()
	if m.CrewFunc != nil {
		return m.CrewFunc(ctx)
	}
	return nil, model.RemoteResult{}, nil
}

func (m *MockTelemetryClient) PassTimes(ctx context.Context, at model.GeoPoint) (*model.PassTimes, model.RemoteResult, error) {
	m.mu.Lock()
	m.Calls.PassTimes = append(m.Calls.PassTimes, at)
	m.mu.Unlock()
	if m.PassTimesFunc != nil {
		return m.PassTimesFunc(ctx, at)
	}
	return nil, model.RemoteResult{}, nil
}

// ---- Mock ChatSender ----

// Sent is one captured outbound call; exactly one of Message or Location is set.
type Sent struct {
	Message  *adapter.OutgoingMessage
	ChatID   int64
	Location *model.GeoPoint
}

type MockChatSender struct {
	mu   sync.Mutex
	Sent []Sent

	SendMessageFunc  func(ctx context.Context, msg adapter.OutgoingMessage) error
	SendLocationFunc func(ctx context.Context, chatID int64, point model.GeoPoint) error
}

var _ adapter.ChatSender = (*MockChatSender)(nil)

func (m *MockChatSender) SendMessage(ctx context.Context, msg adapter.OutgoingMessage) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, Sent{Message: &msg, ChatID: msg.ChatID})
	m.mu.Unlock()
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, msg)
	}
	return nil
}

func (m *MockChatSender) SendLocation(ctx context.Context, chatID int64, point model.GeoPoint) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, Sent{ChatID: chatID, Location: &point})
	m.mu.Unlock()
	if m.SendLocationFunc != nil {
		return m.SendLocationFunc(ctx, chatID, point)
	}
	return nil
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func okResult(url string) model.RemoteResult {
	return model.RemoteResult{StatusCode: 200, URL: url}
}
