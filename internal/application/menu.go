package application

import (
	"iss-telemetry-bot/internal/config"
	"iss-telemetry-bot/internal/domain"
	"iss-telemetry-bot/internal/domain/ports/adapter"
)

// Menu builds the keyboard for the configured variant. Unknown variants fall
// back to the inline one.
func Menu(variant string) adapter.Keyboard {
	if variant == config.MenuReply {
		return adapter.Keyboard{
			Kind: adapter.KeyboardReply,
			Rows: [][]adapter.Button{
				{{Text: domain.ButtonPosition}, {Text: domain.ButtonCrew}},
				{{Text: domain.ButtonPassTimes, RequestLocation: true}},
			},
		}
	}
	return adapter.Keyboard{
		Kind: adapter.KeyboardInline,
		Rows: [][]adapter.Button{
			{{Text: domain.ButtonPosition, Data: domain.CallbackPosition}},
			{{Text: domain.ButtonCrew, Data: domain.CallbackCrew}},
		},
	}
}
