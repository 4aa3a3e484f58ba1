package engine

import (
	"strings"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/domain"
)

// EventKind classifies an inbound event.
type EventKind int

const (
	// EventReset restarts the conversation (/start).
	EventReset EventKind = iota
	// EventText is free text typed by the user.
	EventText
	// EventCommand is a button press decoded into a domain.Command.
	EventCommand
)

func (k EventKind) String() string {
	switch k {
	case EventReset:
		return "reset"
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Event is one user action delivered by a transport.
type Event struct {
	UserID string
	Kind   EventKind
	Text   string
	// Command is nil for a button whose data could not be decoded.
	Command domain.Command
	// Progress, if set, is called with an interim message before slow
	// work such as recipe generation.
	Progress func(text string)
}

// ResetEvent builds a reset event.
func ResetEvent(userID string) Event {
	return Event{UserID: userID, Kind: EventReset}
}

// TextEvent builds a text event; "/start" (optionally addressed as
// "/start@botname") becomes a reset.
func TextEvent(userID, text string) Event {
	if isStart(text) {
		return ResetEvent(userID)
	}
	return Event{UserID: userID, Kind: EventText, Text: text}
}

// CallbackEvent decodes button data. Undecodable data still yields a
// command event, with a nil Command, so the engine can answer it.
func CallbackEvent(userID, data string) Event {
	cmd, _ := conversation.ParseCallback(data)
	return Event{UserID: userID, Kind: EventCommand, Text: data, Command: cmd}
}

func isStart(text string) bool {
	cmd, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.EqualFold(cmd, "/start")
}
