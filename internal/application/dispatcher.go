package application

import (
	"context"
	"errors"
	"fmt"

	"iss-telemetry-bot/internal/config"
	"iss-telemetry-bot/internal/domain"
	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"
	"iss-telemetry-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Handler serves one intent. A non-200 result with a nil error means the
// remote API refused; the handler has sent nothing in that case.
type Handler func(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)

// TelemetryHandlers is the surface the dispatcher needs from the telemetry
// use case. Using an interface lets tests pass light-weight mocks.
type TelemetryHandlers interface {
	Position(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)
	Crew(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)
	PassTimes(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error)
}

// Dispatcher routes every inbound update to its handler and owns the replies
// that do not depend on telemetry: greeting, prompt, apologies and the menu.
type Dispatcher struct {
	sender         adapter.ChatSender
	handlers       map[domain.Intent]Handler
	keyboard       adapter.Keyboard
	menuAfterReply bool
	log            *zerolog.Logger
}

func NewDispatcher(cfg config.BotConfig, sender adapter.ChatSender, telemetry TelemetryHandlers, logger *zerolog.Logger) (*Dispatcher, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: chat sender is nil", domain.ErrInvalidArgument)
	}
	if telemetry == nil {
		return nil, fmt.Errorf("%w: telemetry handlers are nil", domain.ErrInvalidArgument)
	}

	handlers := map[domain.Intent]Handler{
		domain.IntentPosition: telemetry.Position,
		domain.IntentCrew:     telemetry.Crew,
	}
	// Only the reply keyboard can ask for a location.
	if cfg.PassTimesEnabled() {
		handlers[domain.IntentPassTimes] = telemetry.PassTimes
	}

	l := logger.With().Str("component", "Dispatcher").Logger()
	return &Dispatcher{
		sender:         sender,
		handlers:       handlers,
		keyboard:       Menu(cfg.Menu),
		menuAfterReply: cfg.MenuAfterReply(),
		log:            &l,
	}, nil
}

// Dispatch handles one update to completion. Failures are logged and turned
// into chat replies; nothing is returned to the transport.
func (d *Dispatcher) Dispatch(ctx context.Context, u model.InboundUpdate) {
	ctx = logging.WithTgID(ctx, u.UserID)
	ctx = logging.WithChatID(ctx, u.ChatID)
	log := logging.With(ctx, d.log)
	defer logging.TraceDuration(log, "Dispatcher.Dispatch")()

	intent := u.Intent()
	if err := u.Validate(); err != nil {
		if errors.Is(err, domain.ErrMissingChat) {
			log.Warn().Err(err).Str("kind", u.Kind.String()).Msg("dropping update")
			return
		}
		log.Debug().Err(err).Str("kind", u.Kind.String()).Msg("incomplete update")
		intent = domain.IntentUnknown
	}

	if intent == domain.IntentStart {
		d.reply(ctx, log, u.ChatID, domain.MsgGreeting, &d.keyboard)
		return
	}

	h, ok := d.handlers[intent]
	if !ok {
		log.Debug().Str("intent", intent.String()).Str("kind", u.Kind.String()).Msg("no handler, prompting")
		d.reply(ctx, log, u.ChatID, domain.MsgPushButton, &d.keyboard)
		return
	}

	if d.menuAfterReply {
		defer d.reply(ctx, log, u.ChatID, domain.MsgMenu, &d.keyboard)
	}

	res, err := invoke(ctx, h, u)
	switch {
	case err != nil:
		log.Error().Err(err).Str("intent", intent.String()).Msg("handler failed")
		d.reply(ctx, log, u.ChatID, domain.MsgNotFeelingGood, nil)
	case !res.OK():
		log.Error().
			Str("intent", intent.String()).
			Int("status", res.StatusCode).
			Str("url", res.URL).
			Str("body", string(res.Body)).
			Msg("telemetry request failed")
		d.reply(ctx, log, u.ChatID, domain.MsgLostConnection, nil)
	default:
		log.Info().Str("intent", intent.String()).Msg("OK")
	}
}

// invoke runs h and turns a panic into an error.
func invoke(ctx context.Context, h Handler, u model.InboundUpdate) (res model.RemoteResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return h(ctx, u)
}

func (d *Dispatcher) reply(ctx context.Context, log *zerolog.Logger, chatID int64, text string, kb *adapter.Keyboard) {
	msg := adapter.OutgoingMessage{ChatID: chatID, Text: text, Keyboard: kb}
	if err := d.sender.SendMessage(ctx, msg); err != nil {
		log.Error().Err(err).Str("text", text).Msg("send reply")
	}
}
