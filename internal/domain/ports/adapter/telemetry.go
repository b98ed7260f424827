package adapter

import (
	"context"

	"iss-telemetry-bot/internal/domain/model"
)

// TelemetryClient issues one GET per call. A non-200 answer is reported
// through RemoteResult with a nil payload and a nil error; transport and
// decoding problems are errors.
type TelemetryClient interface {
	Position(ctx context.Context) (*model.Position, model.RemoteResult, error)
	Crew(ctx context.Context) (*model.Crew, model.RemoteResult, error)
	PassTimes(ctx context.Context, at model.GeoPoint) (*model.PassTimes, model.RemoteResult, error)
}
