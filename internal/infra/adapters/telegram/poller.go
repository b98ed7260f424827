package telegram

import (
	"context"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"iss-telemetry-bot/internal/config"
	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/infra/logging"
)

// UpdateDispatcher handles one inbound update to completion.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, u model.InboundUpdate)
}

// Poller long-polls getUpdates and feeds every update to the dispatcher, one
// at a time. A failed poll is logged and retried after a fixed delay, forever.
type Poller struct {
	bot            *Bot
	dispatcher     UpdateDispatcher
	timeout        int
	reconnectDelay time.Duration

	offset int
	ready  atomic.Bool
	log    *zerolog.Logger
}

func NewPoller(bot *Bot, dispatcher UpdateDispatcher, cfg config.BotConfig, logger *zerolog.Logger) *Poller {
	l := logger.With().Str("component", "TelegramPoller").Logger()
	return &Poller{
		bot:            bot,
		dispatcher:     dispatcher,
		timeout:        cfg.PollTimeout,
		reconnectDelay: cfg.ReconnectDelay,
		log:            &l,
	}
}

func (p *Poller) Name() string { return "telegram-poller" }

// Ready reports whether the last long poll succeeded.
func (p *Poller) Ready() bool { return p.ready.Load() }

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info().Str("bot", p.bot.Username()).Int("timeout", p.timeout).Msg("polling started")
	for {
		if ctx.Err() != nil {
			p.log.Info().Msg("polling stopped")
			return nil
		}

		updates, err := p.bot.getUpdates(ctx, p.offset, p.timeout)
		if err != nil {
			p.ready.Store(false)
			if ctx.Err() != nil {
				p.log.Info().Msg("polling stopped")
				return nil
			}
			p.log.Error().Err(err).Dur("retry_in", p.reconnectDelay).Msg("get updates failed")
			select {
			case <-time.After(p.reconnectDelay):
			case <-ctx.Done():
				p.log.Info().Msg("polling stopped")
				return nil
			}
			continue
		}
		p.ready.Store(true)

		for _, up := range updates {
			p.offset = up.UpdateID + 1
			p.handle(ctx, up)
		}
	}
}

func (p *Poller) handle(ctx context.Context, up tgbotapi.Update) {
	u, ok := toInbound(up)
	if !ok {
		p.log.Debug().Int("update_id", up.UpdateID).Msg("skipping unsupported update")
		return
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	p.dispatcher.Dispatch(ctx, u)

	if u.CallbackID != "" {
		if err := p.bot.AckCallback(u.CallbackID); err != nil {
			logging.With(ctx, p.log).Warn().Err(err).Msg("ack callback")
		}
	}
}

// toInbound keeps the parts of a Telegram update the bot reacts to: button
// presses, text and location shares. Anything else is reported as not ok.
func toInbound(up tgbotapi.Update) (model.InboundUpdate, bool) {
	u := model.InboundUpdate{UpdateID: up.UpdateID}

	if q := up.CallbackQuery; q != nil {
		u.Kind = model.UpdateCallback
		u.Data = q.Data
		u.CallbackID = q.ID
		if q.From != nil {
			u.UserID = q.From.ID
			u.Username = q.From.UserName
			u.ChatID = q.From.ID
		}
		if q.Message != nil && q.Message.Chat != nil {
			u.ChatID = q.Message.Chat.ID
		}
		return u, true
	}

	m := up.Message
	if m == nil {
		return u, false
	}
	if m.Chat != nil {
		u.ChatID = m.Chat.ID
	}
	if m.From != nil {
		u.UserID = m.From.ID
		u.Username = m.From.UserName
	}

	switch {
	case m.Location != nil:
		u.Kind = model.UpdateLocation
		u.Location = &model.GeoPoint{Latitude: m.Location.Latitude, Longitude: m.Location.Longitude}
	case m.Text != "":
		u.Kind = model.UpdateText
		u.Text = m.Text
	default:
		return u, false
	}
	return u, true
}
