package console

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xinecraft/swat-julia/pkg/domain"
)

func newTestConsole(out io.Writer) *consoleRelay {
	c := newConsole(Config{Nick: "Serge", Bot: "Julia"}, out)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }
	return c
}

func TestDecodeConfig(t *testing.T) {
	config, err := decodeConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{Nick: "Player", Bot: "Julia"}, config)

	config, err = decodeConfig(map[interface{}]interface{}{"nick": "Serge"})
	require.NoError(t, err)
	assert.Equal(t, "Serge", config.Nick)
	assert.Equal(t, "Julia", config.Bot)

	_, err = decodeConfig(map[string]interface{}{"bot": " "})
	assert.Error(t, err)
}

func TestParse_Say(t *testing.T) {
	c := newTestConsole(io.Discard)
	messages, err := c.parse("!kick Bob")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	chat, ok := messages[0].(*domain.ChatMessage)
	require.True(t, ok)
	assert.Equal(t, "!kick Bob", chat.Text())
	assert.Equal(t, domain.Say, chat.Type())
	assert.True(t, chat.Sender().Is(c.self))
}

func TestParse_Team(t *testing.T) {
	c := newTestConsole(io.Discard)
	messages, err := c.parse("/team !help")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	chat := messages[0].(*domain.ChatMessage)
	assert.Equal(t, domain.TeamSay, chat.Type())
	assert.Equal(t, "!help", chat.Text())
}

func TestParse_AsJoinsUnknownPlayerOnce(t *testing.T) {
	c := newTestConsole(io.Discard)
	messages, err := c.parse("/as Bob !echo hi")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	event := messages[0].(*domain.UserEvent)
	assert.Equal(t, domain.UserJoined, event.EventType())
	assert.Equal(t, "Bob", event.Player().Nick())
	chat := messages[1].(*domain.ChatMessage)
	assert.Equal(t, "!echo hi", chat.Text())
	assert.Same(t, event.Player(), chat.Sender())

	messages, err = c.parse("/as bob again")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Same(t, event.Player(), messages[0].(*domain.ChatMessage).Sender())
}

func TestParse_Leave(t *testing.T) {
	c := newTestConsole(io.Discard)
	_, err := c.parse("/as Bob hi")
	require.NoError(t, err)

	messages, err := c.parse("/leave Bob")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	event := messages[0].(*domain.UserEvent)
	assert.Equal(t, domain.UserLeft, event.EventType())
	assert.Equal(t, "Bob", event.Player().Nick())

	messages, err = c.parse("/leave Bob")
	require.NoError(t, err)
	assert.Empty(t, messages)

	messages, err = c.parse("/leave")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].(*domain.UserEvent).Player().Is(c.self))
}

func TestParse_QuitAndBlank(t *testing.T) {
	c := newTestConsole(io.Discard)
	_, err := c.parse("/quit")
	assert.ErrorIs(t, err, io.EOF)

	messages, err := c.parse("   ")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSendAndPass(t *testing.T) {
	var out bytes.Buffer
	c := newTestConsole(&out)
	require.NoError(t, c.Send(domain.NewClientMessage("pong", c.self, domain.StyleDefault)))
	require.NoError(t, c.Pass(domain.NewChatMessage("hello", c.self, domain.TeamSay, nil, false, time.Now())))
	assert.Contains(t, out.String(), "pong")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "[team]")
}
