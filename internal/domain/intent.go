package domain

import "strings"

// Intent is the action a user asked for. The set is closed.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentStart
	IntentPosition
	IntentCrew
	IntentPassTimes
)

// Callback data carried by inline buttons.
const (
	CallbackPosition  = "position"
	CallbackCrew      = "crew"
	CallbackPassTimes = "pass_times"
)

// Button captions. Reply keyboards send the caption back as plain text.
const (
	ButtonPosition  = "Position"
	ButtonCrew      = "Crew"
	ButtonPassTimes = "Pass times"
)

var intentNames = map[Intent]string{
	IntentUnknown:   "unknown",
	IntentStart:     "start",
	IntentPosition:  "position",
	IntentCrew:      "crew",
	IntentPassTimes: "pass_times",
}

var callbackIntents = map[string]Intent{
	CallbackPosition:  IntentPosition,
	CallbackCrew:      IntentCrew,
	CallbackPassTimes: IntentPassTimes,
}

// textIntents is keyed by the lower-cased, trimmed message text.
// Pass times are only reachable through a location share.
var textIntents = map[string]Intent{
	"/start":                        IntentStart,
	"/help":                         IntentStart,
	strings.ToLower(ButtonPosition): IntentPosition,
	"/position":                     IntentPosition,
	strings.ToLower(ButtonCrew):     IntentCrew,
	"/crew":                         IntentCrew,
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return intentNames[IntentUnknown]
}

// IntentFromCallback maps inline button data to an intent.
func IntentFromCallback(data string) Intent {
	if i, ok := callbackIntents[strings.TrimSpace(data)]; ok {
		return i
	}
	return IntentUnknown
}

// IntentFromText maps a typed command or a reply-keyboard caption to an intent.
// A "/cmd@botname" suffix is ignored.
func IntentFromText(text string) Intent {
	key := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(key, "/") {
		if at := strings.Index(key, "@"); at != -1 {
			key = key[:at]
		}
	}
	if i, ok := textIntents[key]; ok {
		return i
	}
	return IntentUnknown
}
