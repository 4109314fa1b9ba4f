package command

import (
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	"github.com/Xinecraft/swat-julia/pkg/domain"
)

// A Handler receives the commands bound to it. It is held by reference only:
// implementations must be pointer types so that Unbind can match them by
// identity, and their lifetime is managed by whoever bound them.
type Handler interface {
	// OnCommandDispatched is called synchronously once per dispatched command.
	// The handler replies now or on a later tick by passing id to one of the
	// Dispatcher reply methods. Only the first reply for an id is shown.
	OnCommandDispatched(dispatcher Dispatcher, name string, id string, args []string, player *domain.Player)
}

// Dispatcher is the surface handlers use to reply and to manage bindings.
type Dispatcher interface {
	Bind(definition Definition) error
	Unbind(name string, handler Handler)
	UnbindAll(handler Handler)
	Names() []string
	Describe(name string) (Definition, bool)

	Respond(id string, text string)
	ThrowError(id string, message string)
	ThrowUsageError(id string)
	ThrowPermissionError(id string)

	Trigger() string
	Format(key string, args ...any) string
	PlayerHasPermission(player *domain.Player, permission permissions.Permission) bool
}

// Definition describes one command to bind.
type Definition struct {
	Name        string
	Handler     Handler
	Usage       string
	Description string
	// Sensitive commands never have their arguments echoed back.
	Sensitive bool
}

// NoOpHandler can be embedded by handlers that want to satisfy Handler before
// implementing it. It replies to every command with an empty response.
type NoOpHandler struct {
}

func (n *NoOpHandler) OnCommandDispatched(dispatcher Dispatcher, _ string, id string, _ []string, _ *domain.Player) {
	dispatcher.Respond(id, "")
}
