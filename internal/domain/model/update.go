package model

import "iss-telemetry-bot/internal/domain"

type UpdateKind int

const (
	UpdateText UpdateKind = iota + 1
	UpdateCallback
	UpdateLocation
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateText:
		return "text"
	case UpdateCallback:
		return "callback"
	case UpdateLocation:
		return "location"
	default:
		return "unknown"
	}
}

// GeoPoint is a position in decimal degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// InboundUpdate is one chat event, already stripped of transport details.
// It lives for a single dispatch.
type InboundUpdate struct {
	UpdateID   int
	Kind       UpdateKind
	ChatID     int64
	UserID     int64
	Username   string
	Text       string
	Data       string
	CallbackID string
	Location   *GeoPoint
}

// Validate checks the fields every variant must carry.
func (u InboundUpdate) Validate() error {
	if u.ChatID == 0 {
		return domain.ErrMissingChat
	}
	if u.Kind == UpdateLocation && u.Location == nil {
		return domain.ErrMissingLocation
	}
	return nil
}

// Intent resolves the update to one of the fixed intents. Any location share
// asks for pass times.
func (u InboundUpdate) Intent() domain.Intent {
	switch u.Kind {
	case UpdateCallback:
		return domain.IntentFromCallback(u.Data)
	case UpdateLocation:
		return domain.IntentPassTimes
	case UpdateText:
		return domain.IntentFromText(u.Text)
	default:
		return domain.IntentUnknown
	}
}
