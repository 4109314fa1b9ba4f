package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Xinecraft/swat-julia/internal/pkg/logger"
	"github.com/Xinecraft/swat-julia/internal/pkg/utils"
	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	parsing "github.com/Xinecraft/swat-julia/pkg/command"
	"github.com/Xinecraft/swat-julia/pkg/domain"
)

const dispatcherComponent = "dispatcher"

// Output delivers one formatted line of text to one player.
type Output interface {
	Deliver(player *domain.Player, text string, style domain.Style)
}

// Translator resolves a message key with positional arguments.
type Translator interface {
	Format(key string, args ...any) string
}

type Settings struct {
	Trigger   string
	IdLength  int
	Threshold time.Duration
	Timeout   time.Duration
}

type Option func(d *Dispatcher)

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func WithIdGenerator(newId func(length int) string) Option {
	return func(d *Dispatcher) {
		d.tracker.newId = newId
	}
}

// WithPermissionManager sets where player permissions are looked up.
func WithPermissionManager(manager permissions.PermissionManager) Option {
	return func(d *Dispatcher) {
		d.permissions = manager
	}
}

// WithCommandPermissions sets where the permission required by each command
// is looked up. Players lacking it get a permission error instead of the
// handler being called.
func WithCommandPermissions(manager permissions.PermissionManager) Option {
	return func(d *Dispatcher) {
		d.commandPermissions = manager
	}
}

// Dispatcher turns chat lines into handler invocations and tracks every
// dispatched command until it is replied to, times out or its player leaves.
// All methods must be called from the same goroutine.
type Dispatcher struct {
	settings    Settings
	registry    *Registry
	tracker     *Tracker
	out         Output
	translator  Translator
	permissions permissions.PermissionManager
	// commandPermissions maps command names to required permissions.
	commandPermissions permissions.PermissionManager
	now                func() time.Time
	closed             bool
}

var _ command.Dispatcher = (*Dispatcher)(nil)

func NewDispatcher(settings Settings, out Output, translator Translator, options ...Option) *Dispatcher {
	d := &Dispatcher{
		settings:   settings,
		registry:   NewRegistry(),
		tracker:    NewTracker(settings.IdLength, utils.RandomID),
		out:        out,
		translator: translator,
		now:        time.Now,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *Dispatcher) Trigger() string {
	return d.settings.Trigger
}

func (d *Dispatcher) Bind(definition command.Definition) error {
	if d.closed {
		return fmt.Errorf("bind %q: dispatcher closed", definition.Name)
	}
	bound, err := d.registry.Bind(definition)
	if err != nil {
		logger.WarnCF(dispatcherComponent, "Command not bound", map[string]any{
			"name":  definition.Name,
			"error": err.Error(),
		})
		return fmt.Errorf("bind %q: %w", definition.Name, err)
	}
	logger.DebugCF(dispatcherComponent, "Command bound", map[string]any{"name": bound.name})
	return nil
}

func (d *Dispatcher) Unbind(name string, handler command.Handler) {
	if d.registry.Unbind(name, handler) {
		logger.DebugCF(dispatcherComponent, "Command unbound", map[string]any{"name": normalizeName(name)})
	}
}

func (d *Dispatcher) UnbindAll(handler command.Handler) {
	if n := d.registry.UnbindAll(handler); n > 0 {
		logger.DebugCF(dispatcherComponent, "Handler unbound", map[string]any{"commands": n})
	}
}

func (d *Dispatcher) Names() []string {
	return d.registry.Names()
}

func (d *Dispatcher) Describe(name string) (command.Definition, bool) {
	bound, ok := d.registry.Lookup(name)
	if !ok {
		return command.Definition{}, false
	}
	return bound.definition(), true
}

// Pending returns the number of tracked commands, replied or not.
func (d *Dispatcher) Pending() int {
	return d.tracker.Len()
}

func (d *Dispatcher) Format(key string, args ...any) string {
	if d.translator == nil {
		return key
	}
	return d.translator.Format(key, args...)
}

func (d *Dispatcher) PlayerHasPermission(player *domain.Player, permission permissions.Permission) bool {
	if player == nil {
		return false
	}
	if d.permissions == nil {
		return true
	}
	p, err := d.permissions.GetPermission(player.Id())
	if err != nil {
		return false
	}
	return p.Has(permission)
}

func (d *Dispatcher) commandAllowed(bound *boundCommand, player *domain.Player) bool {
	if d.commandPermissions == nil {
		return true
	}
	required, err := d.commandPermissions.GetPermission(bound.name)
	if err != nil {
		return false
	}
	return d.PlayerHasPermission(player, required)
}

// HandleChat reports whether message is a command attempt that must be hidden
// from chat. Only public and team chat are eligible; everything else passes
// through.
func (d *Dispatcher) HandleChat(message *domain.ChatMessage) bool {
	if d.closed || message == nil || message.Hidden() {
		return false
	}
	if message.Type() != domain.Say && message.Type() != domain.TeamSay {
		return false
	}
	name, args, ok := parsing.Parse(d.settings.Trigger, utils.Normalize(message.Text()))
	if !ok {
		return false
	}
	d.Dispatch(name, args, message.Sender())
	return true
}

// Dispatch runs the named command for player. A player may have one
// unreplied command at a time.
func (d *Dispatcher) Dispatch(name string, args []string, player *domain.Player) {
	if d.closed || player == nil {
		return
	}
	if _, busy := d.tracker.Outstanding(player); busy {
		d.emit(player, domain.StyleError, "command.cooldown")
		return
	}
	bound, ok := d.registry.Lookup(name)
	if !ok {
		d.emit(player, domain.StyleError, "command.unknown", d.settings.Trigger, strings.ToLower(name))
		return
	}

	d.emitHeader(bound, args, player)
	if len(args) > 0 && strings.EqualFold(args[0], "help") {
		d.emitHelp(bound, player)
		return
	}

	entry, err := d.tracker.Add(bound, player, d.now())
	if err != nil {
		logger.ErrorCF(dispatcherComponent, "Command not dispatched", map[string]any{
			"name":   bound.name,
			"player": player.Nick(),
			"error":  err.Error(),
		})
		d.emit(player, domain.StyleError, "command.error.internal", d.settings.Trigger+bound.name)
		return
	}
	logger.DebugCF(dispatcherComponent, "Command dispatched", map[string]any{
		"name":   bound.name,
		"id":     entry.id,
		"player": player.Nick(),
	})
	if !d.commandAllowed(bound, player) {
		d.ThrowPermissionError(entry.id)
		return
	}
	d.invoke(bound, entry, append([]string{}, args...))
}

func (d *Dispatcher) invoke(bound *boundCommand, entry *pendingCommand, args []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCF(dispatcherComponent, "Command handler panicked", map[string]any{
				"name":  bound.name,
				"id":    entry.id,
				"panic": fmt.Sprint(r),
			})
			d.ThrowError(entry.id, "command.error.internal")
		}
	}()
	bound.handler.OnCommandDispatched(d, bound.name, entry.id, args, entry.player)
}

func (d *Dispatcher) emitHeader(bound *boundCommand, args []string, player *domain.Player) {
	if bound.sensitive || len(args) == 0 {
		d.emit(player, domain.StyleHeader, "command.header.sensitive", d.settings.Trigger, bound.name)
		return
	}
	d.emit(player, domain.StyleHeader, "command.header", d.settings.Trigger, bound.name, strings.Join(args, " "))
}

func (d *Dispatcher) emitHelp(bound *boundCommand, player *domain.Player) {
	usage := strings.TrimSpace(d.Format("command.help.usage", d.settings.Trigger, bound.name, bound.usage))
	d.deliver(player, usage, domain.StyleInfo)
	if bound.description != "" {
		d.emit(player, domain.StyleInfo, "command.help.description", bound.description)
	}
}

// Sweep fails commands that waited longer than the timeout and forgets
// replied commands older than the threshold.
func (d *Dispatcher) Sweep() {
	if d.closed {
		return
	}
	d.tracker.Sweep(d.now(), d.settings.Timeout, d.settings.Threshold, func(entry *pendingCommand) {
		logger.DebugCF(dispatcherComponent, "Command timed out", map[string]any{
			"name":   entry.bound.name,
			"id":     entry.id,
			"player": entry.player.Nick(),
		})
		d.emit(entry.player, domain.StyleError, "command.timeout", d.settings.Trigger, entry.bound.name)
	})
}

// OnDisconnect forgets every command of player without telling anyone.
func (d *Dispatcher) OnDisconnect(player *domain.Player) {
	if d.closed || player == nil {
		return
	}
	if n := d.tracker.RemovePlayer(player); n > 0 {
		logger.DebugCF(dispatcherComponent, "Dropped commands of disconnected player", map[string]any{
			"player":   player.Nick(),
			"commands": n,
		})
	}
}

// Close drops all bindings and tracked commands and releases the output and
// translator. The dispatcher ignores every call afterwards.
func (d *Dispatcher) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.tracker.Clear()
	d.registry.Clear()
	d.out = nil
	d.translator = nil
	d.permissions = nil
	d.commandPermissions = nil
}

func (d *Dispatcher) emit(player *domain.Player, style domain.Style, key string, args ...any) {
	d.deliver(player, d.Format(key, args...), style)
}

func (d *Dispatcher) deliver(player *domain.Player, text string, style domain.Style) {
	if d.out == nil || player == nil || text == "" {
		return
	}
	d.out.Deliver(player, text, style)
}
