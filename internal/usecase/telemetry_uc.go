package usecase

import (
	"context"
	"fmt"
	"time"

	"iss-telemetry-bot/internal/domain"
	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// TelemetryUseCase holds one handler per telemetry intent. Each handler makes
// a single remote call and replies to the originating chat on success. A
// non-200 answer is returned to the caller untouched; only unexpected
// failures come back as errors.
type TelemetryUseCase struct {
	client adapter.TelemetryClient
	sender adapter.ChatSender
	loc    *time.Location
	log    *zerolog.Logger
}

func NewTelemetryUseCase(client adapter.TelemetryClient, sender adapter.ChatSender, loc *time.Location, logger *zerolog.Logger) *TelemetryUseCase {
	if loc == nil {
		loc = time.Local
	}
	l := logger.With().Str("component", "TelemetryUseCase").Logger()
	return &TelemetryUseCase{client: client, sender: sender, loc: loc, log: &l}
}

// Position sends a map pin followed by the coordinates as text.
func (uc *TelemetryUseCase) Position(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error) {
	pos, res, err := uc.client.Position(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch position: %w", err)
	}
	if !res.OK() {
		return res, nil
	}

	point, err := pos.GeoPoint()
	if err != nil {
		return res, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if err := uc.sender.SendLocation(ctx, u.ChatID, point); err != nil {
		return res, fmt.Errorf("send location: %w", err)
	}
	if err := uc.sender.SendMessage(ctx, adapter.OutgoingMessage{
		ChatID: u.ChatID,
		Text:   FormatPosition(*pos),
	}); err != nil {
		return res, fmt.Errorf("send position text: %w", err)
	}
	return res, nil
}

// Crew sends the head count and the names in API order.
func (uc *TelemetryUseCase) Crew(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error) {
	crew, res, err := uc.client.Crew(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch crew: %w", err)
	}
	if !res.OK() {
		return res, nil
	}

	if err := uc.sender.SendMessage(ctx, adapter.OutgoingMessage{
		ChatID:    u.ChatID,
		Text:      FormatCrew(*crew),
		ParseMode: adapter.ParseModeMarkdown,
	}); err != nil {
		return res, fmt.Errorf("send crew: %w", err)
	}
	return res, nil
}

// PassTimes needs the location the user shared.
func (uc *TelemetryUseCase) PassTimes(ctx context.Context, u model.InboundUpdate) (model.RemoteResult, error) {
	if u.Location == nil {
		return model.RemoteResult{}, domain.ErrMissingLocation
	}
	passes, res, err := uc.client.PassTimes(ctx, *u.Location)
	if err != nil {
		return res, fmt.Errorf("fetch pass times: %w", err)
	}
	if !res.OK() {
		return res, nil
	}

	text := domain.MsgNoPasses
	if len(passes.Passes) > 0 {
		text = FormatPassTimes(passes.RiseTimes(), uc.loc)
	} else {
		uc.log.Debug().
			Float64("lat", u.Location.Latitude).
			Float64("lon", u.Location.Longitude).
			Msg("no passes predicted")
	}
	if err := uc.sender.SendMessage(ctx, adapter.OutgoingMessage{ChatID: u.ChatID, Text: text}); err != nil {
		return res, fmt.Errorf("send pass times: %w", err)
	}
	return res, nil
}
