package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xinecraft/swat-julia/internal/pkg/locale"
	"github.com/Xinecraft/swat-julia/internal/pkg/relay/local"
	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
	"github.com/Xinecraft/swat-julia/pkg/domain"
	"github.com/Xinecraft/swat-julia/pkg/queue"
)

var botPlayer = domain.NewPlayer("Julia", "bot")

var user = domain.NewPlayer("user", "userId")

type testCommand struct {
}

func (c *testCommand) OnCommandDispatched(d command.Dispatcher, _ string, id string, args []string, _ *domain.Player) {
	if len(args) > 0 && args[0] == "reply" {
		d.Respond(id, "pong")
	}
}

type botHarness struct {
	bot     *Bot
	server  queue.Producer[domain.ServerMessage]
	client  queue.Consumer[*domain.ClientMessage]
	passed  queue.Consumer[*domain.ChatMessage]
	timeout time.Duration
}

func newBotHarness(t *testing.T, ctx context.Context) *botHarness {
	t.Helper()
	serverMessages := queue.NewQueue[domain.ServerMessage]()
	clientMessages := queue.NewQueue[*domain.ClientMessage]()
	passedMessages := queue.NewQueue[*domain.ChatMessage]()
	serverConsumer, err := serverMessages.NewConsumer()
	require.NoError(t, err)
	clientConsumer, err := clientMessages.NewConsumer()
	require.NoError(t, err)
	passedConsumer, err := passedMessages.NewConsumer()
	require.NoError(t, err)

	catalog, err := locale.Load("en-US")
	require.NoError(t, err)

	config := botConfig.Default()
	config.Tick = 10 * time.Millisecond
	config.Output.Rate = 0
	config.Commands.Disabled = map[string]bool{"disable": true}

	b := NewBot(
		config,
		permissions.NewNoCheckPermissionManager(),
		permissions.NewNoCheckPermissionManager(),
		local.NewRelay(botPlayer, domain.NewPlayerList(user), serverConsumer, clientMessages, passedMessages),
		catalog,
		command.Definition{Name: "test", Handler: &testCommand{}, Usage: "[reply]"},
	)
	require.NoError(t, b.Start(ctx))
	return &botHarness{
		bot:     b,
		server:  serverMessages,
		client:  clientConsumer,
		passed:  passedConsumer,
		timeout: time.Second,
	}
}

func (h *botHarness) produce(t *testing.T, message domain.ServerMessage) {
	t.Helper()
	require.NoError(t, h.server.Produce(message))
}

func (h *botHarness) expectLines(t *testing.T, want ...string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	for _, text := range want {
		message, err := h.client.Consume(ctx)
		require.NoError(t, err)
		assert.Equal(t, text, message.Text())
		assert.True(t, message.Recipient().Is(user))
	}
}

func (h *botHarness) expectPassed(t *testing.T, text string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	message, err := h.passed.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, text, message.Text())
}

func TestBot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := newBotHarness(t, ctx)

	h.produce(t, domain.NewChatMessage("!test reply", user, domain.Say, nil, false, time.Now()))
	h.expectLines(t, "» !test reply", "pong")

	h.produce(t, domain.NewChatMessage("!test", botPlayer, domain.Say, nil, false, time.Now()))
	h.produce(t, domain.NewChatMessage("hello", user, domain.Say, nil, false, time.Now()))
	h.expectPassed(t, "hello")

	h.produce(t, domain.NewChatMessage("!disable test", user, domain.Say, nil, false, time.Now()))
	h.expectLines(t, "Unknown command: !disable")
}

func TestBot_DisconnectReleasesCooldown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := newBotHarness(t, ctx)

	h.produce(t, domain.NewChatMessage("!test wait", user, domain.Say, nil, false, time.Now()))
	h.expectLines(t, "» !test wait")

	h.produce(t, domain.NewChatMessage("!test reply", user, domain.TeamSay, nil, false, time.Now()))
	h.expectLines(t, "Please wait until your previous command has finished.")

	h.produce(t, domain.NewUserEvent(user, domain.UserLeft, time.Now()))
	h.produce(t, domain.NewUserEvent(user, domain.UserJoined, time.Now()))
	h.produce(t, domain.NewChatMessage("!test reply", user, domain.Say, nil, false, time.Now()))
	h.expectLines(t, "» !test reply", "pong")
}

func TestBot_Stop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newBotHarness(t, ctx)

	cancel()
	select {
	case <-h.bot.Done():
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.NoError(t, h.bot.Err())
	assert.Zero(t, h.bot.dispatcher.Pending())
	assert.Empty(t, h.bot.dispatcher.Names())
}
