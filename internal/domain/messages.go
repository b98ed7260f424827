package domain

// Fixed user-facing texts.
const (
	MsgGreeting       = "Hello! How can I help you?"
	MsgPushButton     = "Please push one of the buttons"
	MsgMenu           = "Menu:"
	MsgLostConnection = "Sorry, I lost connection. Try again later please"
	MsgNotFeelingGood = "Sorry, I don't feel good now. Try again later please"
	MsgNoPasses       = "No visible passes predicted for this location."
)
