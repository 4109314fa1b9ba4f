package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"gopkg.in/yaml.v2"

	"github.com/Xinecraft/swat-julia/pkg/domain"
	"github.com/Xinecraft/swat-julia/pkg/relay"
)

func init() {
	relay.RegisterRelay("console", newConsoleRelay)
}

type Config struct {
	Nick string `yaml:"nick"`
	Bot  string `yaml:"bot"`
}

var (
	nickStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3498DB")).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B35")).
			Bold(true)

	teamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2ECC71"))
)

type consoleRelay struct {
	config  Config
	self    *domain.Player
	bot     *domain.Player
	players map[string]*domain.Player
	pending []domain.ServerMessage
	now     func() time.Time

	rl      *readline.Instance
	out     io.Writer
	outMu   sync.Mutex
	lines   chan string
	readErr error
}

var _ relay.Relay = (*consoleRelay)(nil)

func decodeConfig(raw interface{}) (Config, error) {
	config := Config{Nick: "Player", Bot: "Julia"}
	if raw == nil {
		return config, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("console config: %w", err)
	}
	if strings.TrimSpace(config.Nick) == "" || strings.TrimSpace(config.Bot) == "" {
		return config, errors.New("console config: nick and bot must not be empty")
	}
	return config, nil
}

func newConsoleRelay(raw interface{}) (relay.Relay, error) {
	config, err := decodeConfig(raw)
	if err != nil {
		return nil, err
	}
	return newConsole(config, os.Stdout), nil
}

func newConsole(config Config, out io.Writer) *consoleRelay {
	self := domain.NewPlayer(config.Nick, "console")
	return &consoleRelay{
		config:  config,
		self:    self,
		bot:     domain.NewPlayer(config.Bot, "bot"),
		players: map[string]*domain.Player{strings.ToLower(self.Nick()): self},
		now:     time.Now,
		out:     out,
	}
}

func (c *consoleRelay) Connect(ctx context.Context) (*domain.Player, []*domain.Player, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          nickStyle.Render(c.self.Nick()) + ": ",
		HistoryFile:     filepath.Join(os.TempDir(), ".julia_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("console: %w", err)
	}
	c.rl = rl
	c.out = rl.Stdout()
	c.lines = make(chan string)
	go c.read(ctx)
	return c.bot, []*domain.Player{c.self}, nil
}

func (c *consoleRelay) read(ctx context.Context) {
	defer close(c.lines)
	defer c.rl.Close()
	for {
		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				err = io.EOF
			}
			c.readErr = err
			return
		}
		select {
		case c.lines <- line:
		case <-ctx.Done():
			return
		}
	}
}

func (c *consoleRelay) Recv(ctx context.Context) (domain.ServerMessage, error) {
	for len(c.pending) == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case line, ok := <-c.lines:
			if !ok {
				if c.readErr != nil {
					return nil, c.readErr
				}
				return nil, io.EOF
			}
			messages, err := c.parse(line)
			if err != nil {
				return nil, err
			}
			c.pending = messages
		}
	}
	message := c.pending[0]
	c.pending = c.pending[1:]
	return message, nil
}

// parse turns one console line into the server messages it stands for.
//
//	text              public chat from the console player
//	/team text        team chat
//	/as nick text     public chat from nick, who joins first if unknown
//	/leave [nick]     nick, or the console player, leaves
//	/quit             ends the session
func (c *consoleRelay) parse(line string) ([]domain.ServerMessage, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}
	now := c.now()
	if !strings.HasPrefix(trimmed, "/") {
		return []domain.ServerMessage{domain.NewChatMessage(line, c.self, domain.Say, nil, false, now)}, nil
	}
	verb, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)
	switch verb {
	case "/quit":
		return nil, io.EOF
	case "/team":
		return []domain.ServerMessage{domain.NewChatMessage(rest, c.self, domain.TeamSay, nil, false, now)}, nil
	case "/as":
		nick, text, _ := strings.Cut(rest, " ")
		if nick == "" {
			return nil, nil
		}
		var messages []domain.ServerMessage
		player, known := c.players[strings.ToLower(nick)]
		if !known {
			player = domain.NewPlayer(nick, "")
			c.players[strings.ToLower(nick)] = player
			messages = append(messages, domain.NewUserEvent(player, domain.UserJoined, now))
		}
		return append(messages, domain.NewChatMessage(text, player, domain.Say, nil, false, now)), nil
	case "/leave":
		player := c.self
		if rest != "" {
			known, ok := c.players[strings.ToLower(rest)]
			if !ok {
				return nil, nil
			}
			player = known
		}
		delete(c.players, strings.ToLower(player.Nick()))
		return []domain.ServerMessage{domain.NewUserEvent(player, domain.UserLeft, now)}, nil
	}
	return []domain.ServerMessage{domain.NewChatMessage(line, c.self, domain.Say, nil, false, now)}, nil
}

func (c *consoleRelay) Send(message *domain.ClientMessage) error {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#" + message.Style().Color()))
	return c.println(fmt.Sprintf("%s → %s %s",
		botStyle.Render(c.bot.Nick()),
		nickStyle.Render(message.Recipient().Nick()),
		style.Render(message.Text()),
	))
}

func (c *consoleRelay) Pass(message *domain.ChatMessage) error {
	nick := nickStyle.Render(message.Sender().Nick())
	if message.Type() == domain.TeamSay {
		nick = teamStyle.Render("[team] ") + nick
	}
	return c.println(fmt.Sprintf("%s: %s", nick, message.Text()))
}

func (c *consoleRelay) println(line string) error {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, err := fmt.Fprintln(c.out, line)
	return err
}
