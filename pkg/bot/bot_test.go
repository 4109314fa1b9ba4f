package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalBot "github.com/Xinecraft/swat-julia/internal/pkg/bot"
	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
	"github.com/Xinecraft/swat-julia/pkg/domain"
	"github.com/Xinecraft/swat-julia/pkg/relay"
)

type nopRelay struct{}

func (nopRelay) Connect(context.Context) (*domain.Player, []*domain.Player, error) {
	return domain.NewPlayer("Julia", "bot"), nil, nil
}

func (nopRelay) Recv(ctx context.Context) (domain.ServerMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (nopRelay) Send(*domain.ClientMessage) error {
	return nil
}

func (nopRelay) Pass(*domain.ChatMessage) error {
	return nil
}

type pingCommand struct{}

func (p *pingCommand) OnCommandDispatched(d command.Dispatcher, _ string, id string, _ []string, _ *domain.Player) {
	d.Respond(id, "pong")
}

func init() {
	relay.RegisterRelay("nop", func(interface{}) (relay.Relay, error) {
		return nopRelay{}, nil
	})
}

func TestHandleCommand(t *testing.T) {
	before := len(internalBot.Commands)
	HandleCommand(command.Definition{Name: "ping", Handler: &pingCommand{}})
	HandleCommand(command.Definition{Name: "nil"})
	assert.Len(t, internalBot.Commands, before+1)
	assert.Equal(t, "ping", internalBot.Commands[len(internalBot.Commands)-1].Name)
}

func TestNewBot(t *testing.T) {
	config := botConfig.Default()
	config.Connector = map[string]interface{}{"nop": nil}

	b, err := NewBot(config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, b.Start(ctx))
	cancel()
	<-b.Done()
	assert.NoError(t, b.Err())
}

func TestNewBot_Errors(t *testing.T) {
	config := botConfig.Default()
	config.Connector = map[string]interface{}{"missing": nil}
	_, err := NewBot(config)
	assert.Error(t, err)

	config.Connector = map[string]interface{}{"nop": nil}
	config.Users.AllowAll = false
	config.Users.Permissions = botConfig.PermissionConfig{Format: "unknown"}
	_, err = NewBot(config)
	assert.Error(t, err)
}

func TestPermissionManagers_AllowAll(t *testing.T) {
	users, commands, err := permissionManagers(botConfig.Default())
	require.NoError(t, err)
	p, err := users.GetPermission("anyone")
	require.NoError(t, err)
	assert.Equal(t, permissions.ADMIN, p)
	assert.NotNil(t, commands)
}
