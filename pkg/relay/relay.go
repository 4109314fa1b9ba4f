package relay

import (
	"context"
	"fmt"
	"sort"

	"github.com/Xinecraft/swat-julia/pkg/domain"
)

// Relay is the bot's view of the game server: it receives chat and player
// events and delivers lines of text to individual players.
type Relay interface {
	// Connect returns the bot's own identity and the players already online.
	Connect(ctx context.Context) (*domain.Player, []*domain.Player, error)
	Recv(ctx context.Context) (domain.ServerMessage, error)
	// Send delivers one line to the message recipient.
	Send(message *domain.ClientMessage) error
	// Pass hands a chat message that is not a command back to the server
	// unmodified.
	Pass(message *domain.ChatMessage) error
}

type RelayBuilder func(config interface{}) (Relay, error)

var relays = map[string]RelayBuilder{}

func RegisterRelay(key string, relayBuilder RelayBuilder) {
	relays[key] = relayBuilder
}

// GetRelay builds the first registered relay named in the connector config.
func GetRelay(config map[string]interface{}) (Relay, error) {
	keys := make([]string, 0, len(config))
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if builder, ok := relays[key]; ok {
			return builder(config[key])
		}
	}
	return nil, fmt.Errorf("no registered relay among %v", keys)
}
