package domain

import (
	"fmt"
	"time"
)

type MessageType int

const (
	Say MessageType = iota
	TeamSay
	Whisper
	Server
)

func (t MessageType) String() string {
	switch t {
	case Say:
		return "say"
	case TeamSay:
		return "teamsay"
	case Whisper:
		return "whisper"
	case Server:
		return "server"
	}
	return fmt.Sprintf("MessageType(%d)", int(t))
}

// ServerMessage is anything the game server relays to the bot.
type ServerMessage interface {
	Timestamp() time.Time
}

type ChatMessage struct {
	sender      *Player
	messageType MessageType
	text        string
	recipient   *Player
	hidden      bool
	timestamp   time.Time
}

func NewChatMessage(text string, sender *Player, messageType MessageType, recipient *Player, hidden bool, timestamp time.Time) *ChatMessage {
	return &ChatMessage{
		sender:      sender,
		messageType: messageType,
		text:        text,
		recipient:   recipient,
		hidden:      hidden,
		timestamp:   timestamp,
	}
}

func (m *ChatMessage) Sender() *Player {
	return m.sender
}

func (m *ChatMessage) Type() MessageType {
	return m.messageType
}

func (m *ChatMessage) Text() string {
	return m.text
}

func (m *ChatMessage) Recipient() *Player {
	return m.recipient
}

func (m *ChatMessage) Hidden() bool {
	return m.hidden
}

func (m *ChatMessage) Timestamp() time.Time {
	return m.timestamp
}

type UserEventType int

const (
	UserJoined UserEventType = iota
	UserLeft
)

type UserEvent struct {
	player    *Player
	eventType UserEventType
	timestamp time.Time
}

func NewUserEvent(player *Player, eventType UserEventType, timestamp time.Time) *UserEvent {
	return &UserEvent{
		player:    player,
		eventType: eventType,
		timestamp: timestamp,
	}
}

func (e *UserEvent) Player() *Player {
	return e.player
}

func (e *UserEvent) EventType() UserEventType {
	return e.eventType
}

func (e *UserEvent) Timestamp() time.Time {
	return e.timestamp
}

// ClientMessage is one line of text the bot asks the server to show to a
// single player.
type ClientMessage struct {
	text      string
	recipient *Player
	style     Style
}

func NewClientMessage(text string, recipient *Player, style Style) *ClientMessage {
	return &ClientMessage{
		text:      text,
		recipient: recipient,
		style:     style,
	}
}

func (m *ClientMessage) Text() string {
	return m.text
}

func (m *ClientMessage) Recipient() *Player {
	return m.recipient
}

func (m *ClientMessage) Style() Style {
	return m.style
}

var _ ServerMessage = (*ChatMessage)(nil)
var _ ServerMessage = (*UserEvent)(nil)
