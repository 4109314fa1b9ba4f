package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Xinecraft/swat-julia/internal/pkg/logger"
	"github.com/Xinecraft/swat-julia/pkg"
	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
	"github.com/Xinecraft/swat-julia/pkg/domain"
	"github.com/Xinecraft/swat-julia/pkg/queue"
	"github.com/Xinecraft/swat-julia/pkg/relay"
)

const botComponent = "bot"

// Commands holds the definitions registered by command packages at init.
var Commands []command.Definition

var _ pkg.Runnable = (*Bot)(nil)

// Bot connects a relay to a Dispatcher. One goroutine owns the dispatcher and
// serializes chat, player events and sweep ticks; the relay is read and
// written on goroutines of their own.
type Bot struct {
	config      botConfig.Config
	relay       relay.Relay
	definitions []command.Definition
	players     domain.PlayerList
	botPlayer   *domain.Player
	dispatcher  *Dispatcher
	outbox      queue.Queue[*domain.ClientMessage]
	limiter     *rate.Limiter
	ctx         context.Context
	cancelFunc  context.CancelFunc
	done        chan struct{}
	errOnce     sync.Once
	err         error
	errMu       sync.Mutex
}

type botOutput struct {
	outbox queue.Queue[*domain.ClientMessage]
}

func (o *botOutput) Deliver(player *domain.Player, text string, style domain.Style) {
	if err := o.outbox.Produce(domain.NewClientMessage(text, player, style)); err != nil {
		logger.WarnCF(botComponent, "Line dropped", map[string]any{
			"player": player.Nick(),
			"error":  err.Error(),
		})
	}
}

func NewBot(
	config botConfig.Config,
	userPermissionManager permissions.PermissionManager,
	commandPermissionManager permissions.PermissionManager,
	relay relay.Relay,
	translator Translator,
	definitions ...command.Definition,
) *Bot {
	outbox := queue.NewQueue[*domain.ClientMessage]()
	b := &Bot{
		config:      config,
		relay:       relay,
		definitions: definitions,
		players:     domain.NewPlayerList(),
		outbox:      outbox,
		done:        make(chan struct{}),
	}
	if config.Output.Rate > 0 {
		burst := config.Output.Burst
		if burst < 1 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(config.Output.Rate), burst)
	}
	b.dispatcher = NewDispatcher(
		Settings{
			Trigger:   config.Trigger,
			IdLength:  config.Commands.IdLength,
			Threshold: config.Commands.Threshold,
			Timeout:   config.Commands.Timeout,
		},
		&botOutput{outbox: outbox},
		translator,
		WithPermissionManager(userPermissionManager),
		WithCommandPermissions(commandPermissionManager),
	)
	return b
}

func (b *Bot) isCommandDisabled(name string) bool {
	if b.config.Commands.Disabled == nil {
		return false
	}
	return b.config.Commands.Disabled[normalizeName(name)]
}

func (b *Bot) initCommands() {
	definitions := append(builtinDefinitions(), b.definitions...)
	for _, definition := range definitions {
		if b.isCommandDisabled(definition.Name) {
			logger.InfoCF(botComponent, "Command disabled by config", map[string]any{"name": definition.Name})
			continue
		}
		_ = b.dispatcher.Bind(definition)
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.ctx, b.cancelFunc = context.WithCancel(ctx)
	botPlayer, online, err := b.relay.Connect(b.ctx)
	if err != nil {
		b.cancelFunc()
		return fmt.Errorf("cannot connect to server: %w", err)
	}
	b.botPlayer = botPlayer
	for _, player := range online {
		b.players.Add(player)
	}
	outConsumer, err := b.outbox.NewConsumer()
	if err != nil {
		b.cancelFunc()
		return err
	}
	b.initCommands()
	logger.InfoCF(botComponent, "Bot started", map[string]any{
		"commands": len(b.dispatcher.Names()),
		"players":  b.players.Len(),
	})

	inbound := make(chan domain.ServerMessage)
	go b.receive(inbound)
	go b.send(outConsumer)
	go b.run(inbound)
	return nil
}

func (b *Bot) Done() <-chan struct{} {
	return b.done
}

func (b *Bot) Err() error {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.err
}

func (b *Bot) fail(err error) {
	b.errOnce.Do(func() {
		b.errMu.Lock()
		b.err = err
		b.errMu.Unlock()
	})
	b.cancelFunc()
}

func (b *Bot) receive(inbound chan<- domain.ServerMessage) {
	for {
		message, err := b.relay.Recv(b.ctx)
		if err != nil {
			switch {
			case b.ctx.Err() != nil:
			case errors.Is(err, io.EOF):
				logger.InfoC(botComponent, "Server closed the connection")
				b.cancelFunc()
			default:
				b.fail(fmt.Errorf("receive: %w", err))
			}
			return
		}
		select {
		case inbound <- message:
		case <-b.ctx.Done():
			return
		}
	}
}

func (b *Bot) send(consumer queue.Consumer[*domain.ClientMessage]) {
	defer consumer.Cancel()
	for {
		message, err := consumer.Consume(b.ctx)
		if err != nil {
			return
		}
		if b.limiter != nil {
			if err := b.limiter.Wait(b.ctx); err != nil {
				return
			}
		}
		if err := b.relay.Send(message); err != nil {
			logger.ErrorCF(botComponent, "Could not send line", map[string]any{
				"player": message.Recipient().Nick(),
				"error":  err.Error(),
			})
		}
	}
}

func (b *Bot) run(inbound <-chan domain.ServerMessage) {
	tick := b.config.Tick
	if tick <= 0 {
		tick = botConfig.Default().Tick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			b.shutdown()
			return
		case <-ticker.C:
			b.dispatcher.Sweep()
		case message := <-inbound:
			b.handle(message)
		}
	}
}

func (b *Bot) handle(message domain.ServerMessage) {
	switch message := message.(type) {
	case *domain.ChatMessage:
		if b.botPlayer != nil && b.botPlayer.Is(message.Sender()) {
			return
		}
		if b.dispatcher.HandleChat(message) {
			return
		}
		if err := b.relay.Pass(message); err != nil {
			logger.WarnCF(botComponent, "Could not pass chat message", map[string]any{"error": err.Error()})
		}
	case *domain.UserEvent:
		switch message.EventType() {
		case domain.UserJoined:
			b.players.Add(message.Player())
		case domain.UserLeft:
			b.players.Remove(message.Player())
			b.dispatcher.OnDisconnect(message.Player())
		}
	}
}

func (b *Bot) shutdown() {
	b.dispatcher.Close()
	b.outbox.Close()
	if err := b.ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		b.fail(err)
	}
	logger.InfoC(botComponent, "Bot stopped")
}
