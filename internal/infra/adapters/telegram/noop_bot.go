package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"
	"iss-telemetry-bot/internal/infra/logging"
)

var _ adapter.ChatSender = (*NoopSender)(nil)

// NoopSender implements adapter.ChatSender for dry runs.
// It logs replies instead of sending real Telegram messages.
type NoopSender struct {
	log *zerolog.Logger
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	l := logger.With().Str("component", "NoopSender").Logger()
	return &NoopSender{log: &l}
}

func (n *NoopSender) SendMessage(ctx context.Context, m adapter.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := logging.With(ctx, n.log).Info().
		Int64("to", m.ChatID).
		Str("text", m.Text).
		Str("parse_mode", string(m.ParseMode))
	if m.Keyboard != nil {
		ev = ev.Int("keyboard_rows", len(m.Keyboard.Rows))
	}
	ev.Msg("[noop-telegram] message")
	return nil
}

func (n *NoopSender) SendLocation(ctx context.Context, chatID int64, point model.GeoPoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logging.With(ctx, n.log).Info().
		Int64("to", chatID).
		Float64("lat", point.Latitude).
		Float64("lon", point.Longitude).
		Msg("[noop-telegram] location")
	return nil
}
