package local

import (
	"context"

	"github.com/Xinecraft/swat-julia/pkg/domain"
	"github.com/Xinecraft/swat-julia/pkg/queue"
	"github.com/Xinecraft/swat-julia/pkg/relay"
)

// Relay is an in-process relay backed by queues. Server messages are read
// from serverMessages; lines and passed-through chat are produced to
// clientMessages and passed.
type Relay struct {
	botPlayer      *domain.Player
	onlinePlayers  domain.PlayerList
	serverMessages queue.Consumer[domain.ServerMessage]
	clientMessages queue.Producer[*domain.ClientMessage]
	passed         queue.Producer[*domain.ChatMessage]
}

var _ relay.Relay = (*Relay)(nil)

func (r *Relay) Connect(context.Context) (*domain.Player, []*domain.Player, error) {
	return r.botPlayer, r.onlinePlayers.All(), nil
}

func (r *Relay) Recv(ctx context.Context) (domain.ServerMessage, error) {
	return r.serverMessages.Consume(ctx)
}

func (r *Relay) Send(message *domain.ClientMessage) error {
	return r.clientMessages.Produce(message)
}

func (r *Relay) Pass(message *domain.ChatMessage) error {
	if r.passed == nil {
		return nil
	}
	return r.passed.Produce(message)
}

// NewRelay builds a relay for botPlayer. passed may be nil, in which case
// chat that is not a command is dropped.
func NewRelay(
	botPlayer *domain.Player,
	onlinePlayers domain.PlayerList,
	serverMessages queue.Consumer[domain.ServerMessage],
	clientMessages queue.Producer[*domain.ClientMessage],
	passed queue.Producer[*domain.ChatMessage],
) *Relay {
	if onlinePlayers == nil {
		onlinePlayers = domain.NewPlayerList()
	}
	return &Relay{
		botPlayer:      botPlayer,
		onlinePlayers:  onlinePlayers,
		serverMessages: serverMessages,
		clientMessages: clientMessages,
		passed:         passed,
	}
}
