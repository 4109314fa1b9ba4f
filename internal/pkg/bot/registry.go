package bot

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/Xinecraft/swat-julia/pkg/bot/command"
)

var (
	ErrEmptyName      = errors.New("command name is empty")
	ErrAlreadyBound   = errors.New("command name is already bound")
	ErrInvalidHandler = errors.New("command handler must be a non-nil pointer")
)

type boundCommand struct {
	name        string
	handler     command.Handler
	usage       string
	description string
	sensitive   bool
}

func (c *boundCommand) definition() command.Definition {
	return command.Definition{
		Name:        c.name,
		Handler:     c.handler,
		Usage:       c.usage,
		Description: c.description,
		Sensitive:   c.sensitive,
	}
}

// Registry maps command names to handlers. Names are unique after
// normalization.
type Registry struct {
	commands []*boundCommand
}

func NewRegistry() *Registry {
	return &Registry{}
}

// normalizeName trims, removes all whitespace and lower-cases name.
func normalizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return strings.ToLower(name)
}

func validHandler(handler command.Handler) bool {
	if handler == nil {
		return false
	}
	v := reflect.ValueOf(handler)
	return v.Kind() == reflect.Ptr && !v.IsNil()
}

func (r *Registry) Bind(definition command.Definition) (*boundCommand, error) {
	name := normalizeName(definition.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !validHandler(definition.Handler) {
		return nil, ErrInvalidHandler
	}
	if _, exists := r.Lookup(name); exists {
		return nil, ErrAlreadyBound
	}
	bound := &boundCommand{
		name:        name,
		handler:     definition.Handler,
		usage:       definition.Usage,
		description: definition.Description,
		sensitive:   definition.Sensitive,
	}
	r.commands = append(r.commands, bound)
	return bound, nil
}

func (r *Registry) Unbind(name string, handler command.Handler) bool {
	name = normalizeName(name)
	for i, c := range r.commands {
		if c.name == name && c.handler == handler {
			r.commands = append(r.commands[:i], r.commands[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) UnbindAll(handler command.Handler) int {
	kept := r.commands[:0]
	removed := 0
	for _, c := range r.commands {
		if c.handler == handler {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(r.commands); i++ {
		r.commands[i] = nil
	}
	r.commands = kept
	return removed
}

func (r *Registry) Lookup(name string) (*boundCommand, bool) {
	name = normalizeName(name)
	if name == "" {
		return nil, false
	}
	for _, c := range r.commands {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Names returns the bound names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		names = append(names, c.name)
	}
	return names
}

func (r *Registry) Len() int {
	return len(r.commands)
}

func (r *Registry) Clear() {
	r.commands = nil
}
