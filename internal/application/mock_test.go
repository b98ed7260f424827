//go:build !integration

package application_test

import (
	"bytes"
	"context"
	"io"
	"sync"

	"iss-telemetry-bot/internal/application"
	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// ---- Mock TelemetryHandlers ----

type MockTelemetryHandlers struct {
	PositionFunc  func(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)
	CrewFunc      func(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)
	PassTimesFunc func(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)

	Calls []string
}

var _ application.TelemetryHandlers = (*MockTelemetryHandlers)(nil)

func (m *MockTelemetryHandlers) Position(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error) {
	m.Calls = append(m.Calls, "position")
	if m.PositionFunc != nil {
		return m.PositionFunc(ctx, u)
	}
	return okResult(), nil
}

func (m *MockTelemetryHandlers) Crew(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error) {
	m.Calls = append(m.Calls, "crew")
	if m.CrewFunc != nil {
		return m.CrewFunc(ctx, u)
	}
	return okResult(), nil
}

func (m *MockTelemetryHandlers) PassTimes(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error) {
	m.Calls = append(m.Calls, "pass_times")
	if m.PassTimesFunc != nil {
		return m.PassTimesFunc(ctx, u)
	}
	return okResult(), nil
}

// ---- Mock TelemetryClient ----

type MockTelemetryClient struct {
	PositionFunc func(ctx context.Context) (*model.Position, model.RemoteResult, error)
	Calls        int
}

var _ adapter.TelemetryClient = (*MockTelemetryClient)(nil)

func (m *MockTelemetryClient) Position(ctx context.Context) (*model.Position, model.RemoteResult, error) {
	m.Calls++
	if m.PositionFunc != nil {
		return m.PositionFunc(ctx)
	}
	return nil, model.RemoteResult{}, nil
}

func (m *MockTelemetryClient) Crew(ctx context.Context) (*model.Crew, model.RemoteResult, error) {
	m.Calls++
	return nil, model.RemoteResult{}, nil
}

func (m *MockTelemetryClient) PassTimes(ctx context.Context, at model.GeoPoint) (*model.PassTimes, model.RemoteResult, error) {
	m.Calls++
	return nil, model.RemoteResult{}, nil
}

// ---- Mock ChatSender ----

// Sent is one captured outbound call; Location is set for pins only.
type Sent struct {
	Message  adapter.OutgoingMessage
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
	m.Sent = append(m.Sent, Sent{Message: msg})
	m.mu.Unlock()
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, msg)
	}
	return nil
}

func (m *MockChatSender) SendLocation(ctx context.Context, chatID int64, point model.GeoPoint) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, Sent{Message: adapter.OutgoingMessage{ChatID: chatID}, Location: &point})
	m.mu.Unlock()
	if m.SendLocationFunc != nil {
		return m.SendLocationFunc(ctx, chatID, point)
	}
	return nil
}

// Texts lists the text of every message send, pins excluded.
func (m *MockChatSender) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, s := range m.Sent {
		if s.Location == nil {
			out = append(out, s.Message.Text)
		}
	}
	return out
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// newBufferLogger captures JSON lines so tests can assert on log fields.
func newBufferLogger() (*zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	return &logger, &buf
}

func okResult() model.RemoteResult {
	return model.RemoteResult{StatusCode: 200, URL: "http://api.test/iss-now.json"}
}
