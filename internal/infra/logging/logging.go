package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"iss-telemetry-bot/internal/config"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger configured from config.
// Supports "trace" | "debug" | "info" | "warn" | "error" levels
// and "json" | "console" formats. Every line also goes to the append-only
// log file unless cfg.File is "-". The returned closer releases the file.
func New(cfg config.LogConfig, dev bool) (*zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var console io.Writer = os.Stdout
	if strings.ToLower(cfg.Format) == "console" || dev {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" && cfg.File != "-" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	base := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()

	if cfg.Sampling && !dev {
		// 1 in every 100 trace/debug/info lines; warn and above are never sampled
		sampled := base.Sample(zerolog.LevelSampler{
			TraceSampler: &zerolog.BasicSampler{N: 100},
			DebugSampler: &zerolog.BasicSampler{N: 100},
			InfoSampler:  &zerolog.BasicSampler{N: 100},
		})
		return &sampled, closer, nil
	}
	return &base, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type ctxKey string

const (
	ctxTraceID ctxKey = "trace_id"
	ctxTgID    ctxKey = "tg_id"
	ctxChatID  ctxKey = "chat_id"
)

// With attaches the request fields found in ctx to a child of base.
func With(ctx context.Context, base *zerolog.Logger) *zerolog.Logger {
	l := base.With()
	if v, ok := ctx.Value(ctxTraceID).(string); ok {
		l = l.Str("trace_id", v)
	}
	if v, ok := ctx.Value(ctxTgID).(int64); ok {
		l = l.Int64("tg_id", v)
	}
	if v, ok := ctx.Value(ctxChatID).(int64); ok {
		l = l.Int64("chat_id", v)
	}
	logger := l.Logger()
	return &logger
}

// TraceDuration logs start and end with elapsed duration at TRACE level.
// Usage: defer logging.TraceDuration(logger, "Dispatcher.Dispatch")()
func TraceDuration(logger *zerolog.Logger, name string) func() {
	start := time.Now()
	logger.Trace().Str("method", name).Msg("start")
	return func() {
		logger.Trace().Str("method", name).Dur("duration", time.Since(start)).Msg("finish")
	}
}

// Helpers to put IDs into context.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxTraceID, id)
}
func WithTgID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxTgID, id)
}
func WithChatID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxChatID, id)
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(ctxTraceID).(string)
	return v
}

// BotLogger routes the Telegram library's own log lines into zerolog.
// It satisfies tgbotapi.BotLogger.
type BotLogger struct {
	log *zerolog.Logger
}

func NewBotLogger(base *zerolog.Logger) *BotLogger {
	l := base.With().Str("component", "tgbotapi").Logger()
	return &BotLogger{log: &l}
}

func (b *BotLogger) Println(v ...interface{}) {
	b.log.Debug().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (b *BotLogger) Printf(format string, v ...interface{}) {
	b.log.Debug().Msg(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}
