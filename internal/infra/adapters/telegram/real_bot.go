package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"iss-telemetry-bot/internal/config"
	"iss-telemetry-bot/internal/domain"
	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"
	"iss-telemetry-bot/internal/infra/logging"
)

var _ adapter.ChatSender = (*Bot)(nil)

// Bot wraps tgbotapi and implements the chat sender port.
type Bot struct {
	api    *tgbotapi.BotAPI
	client *pollClient
	log    *zerolog.Logger
}

// NewBot connects to the Bot API and checks the token with getMe. endpoint is
// a tgbotapi endpoint format; empty means the public Telegram API.
func NewBot(cfg config.BotConfig, httpClient *http.Client, endpoint string, logger *zerolog.Logger) (*Bot, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("%w: bot token is empty", domain.ErrInvalidArgument)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if err := tgbotapi.SetLogger(logging.NewBotLogger(logger)); err != nil {
		return nil, fmt.Errorf("set bot logger: %w", err)
	}

	client := &pollClient{inner: httpClient}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = cfg.Debug

	l := logger.With().Str("component", "TelegramBot").Str("bot", api.Self.UserName).Logger()
	return &Bot{api: api, client: client, log: &l}, nil
}

func (b *Bot) Username() string { return b.api.Self.UserName }

// SendMessage sends text with an optional keyboard.
func (b *Bot) SendMessage(ctx context.Context, m adapter.OutgoingMessage) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ParseMode = string(m.ParseMode)
	if m.Keyboard != nil {
		msg.ReplyMarkup = replyMarkup(*m.Keyboard)
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", m.ChatID, err)
	}
	return nil
}

// SendLocation sends a map pin.
func (b *Bot) SendLocation(ctx context.Context, chatID int64, point model.GeoPoint) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if _, err := b.api.Send(tgbotapi.NewLocation(chatID, point.Latitude, point.Longitude)); err != nil {
		return fmt.Errorf("send location to %d: %w", chatID, err)
	}
	return nil
}

// AckCallback stops the spinner on the pressed inline button.
func (b *Bot) AckCallback(callbackID string) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answer callback %s: %w", callbackID, err)
	}
	return nil
}

// getUpdates long-polls once. Cancelling ctx aborts the pending request.
func (b *Bot) getUpdates(ctx context.Context, offset, timeout int) ([]tgbotapi.Update, error) {
	b.client.bind(ctx)
	defer b.client.bind(nil)

	u := tgbotapi.NewUpdate(offset)
	u.Timeout = timeout
	return b.api.GetUpdates(u)
}

// replyMarkup converts a keyboard into the tgbotapi markup of its kind.
// - inline buttons carry callback data, falling back to the caption
// - reply buttons send their caption, or the user's location when asked
func replyMarkup(kb adapter.Keyboard) interface{} {
	if kb.Kind == adapter.KeyboardReply {
		rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			if len(row) == 0 {
				continue
			}
			r := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, btn := range row {
				if btn.RequestLocation {
					r = append(r, tgbotapi.NewKeyboardButtonLocation(label(btn)))
				} else {
					r = append(r, tgbotapi.NewKeyboardButton(label(btn)))
				}
			}
			rows = append(rows, r)
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = true
		return markup
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			data := btn.Data
			if data == "" {
				data = label(btn)
			}
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(label(btn), data))
		}
		rows = append(rows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func label(btn adapter.Button) string {
	if l := strings.TrimSpace(btn.Text); l != "" {
		return l
	}
	return "•"
}

// pollClient lets a long poll be cancelled even though tgbotapi does not
// take a context.
type pollClient struct {
	inner *http.Client

	mu  sync.Mutex
	ctx context.Context
}

func (c *pollClient) bind(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
}

func (c *pollClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	return c.inner.Do(req)
}
