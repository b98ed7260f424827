package adapter

import (
	"context"

	"iss-telemetry-bot/internal/domain/model"
)

type KeyboardKind int

const (
	// KeyboardInline is attached to a message and answers with callback data.
	KeyboardInline KeyboardKind = iota + 1
	// KeyboardReply replaces the user's keyboard and answers with text or a location.
	KeyboardReply
)

type Button struct {
	Text            string
	Data            string
	RequestLocation bool
}

type Keyboard struct {
	Kind KeyboardKind
	Rows [][]Button
}

type ParseMode string

const (
	ParseModeNone     ParseMode = ""
	ParseModeMarkdown ParseMode = "Markdown"
)

type OutgoingMessage struct {
	ChatID    int64
	Text      string
	ParseMode ParseMode
	Keyboard  *Keyboard
}

// ChatSender is the outbound half of the chat transport.
type ChatSender interface {
	SendMessage(ctx context.Context, msg OutgoingMessage) error
	SendLocation(ctx context.Context, chatID int64, point model.GeoPoint) error
}
