package bot

import (
	"strings"

	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	"github.com/Xinecraft/swat-julia/pkg/domain"
)

type helpCommand struct {
}

func (h *helpCommand) OnCommandDispatched(d command.Dispatcher, _ string, id string, args []string, _ *domain.Player) {
	if len(args) > 0 {
		definition, ok := d.Describe(args[0])
		if !ok {
			d.Respond(id, d.Format("command.unknown", d.Trigger(), strings.ToLower(args[0])))
			return
		}
		lines := []string{strings.TrimSpace(d.Format("command.help.usage", d.Trigger(), definition.Name, definition.Usage))}
		if definition.Description != "" {
			lines = append(lines, d.Format("command.help.description", definition.Description))
		}
		d.Respond(id, strings.Join(lines, "\n"))
		return
	}
	names := d.Names()
	if len(names) == 0 {
		d.Respond(id, d.Format("command.list.empty"))
		return
	}
	for i, name := range names {
		names[i] = d.Trigger() + name
	}
	d.Respond(id, d.Format("command.list", strings.Join(names, ", ")))
}

type disableCommand struct {
}

func (c *disableCommand) OnCommandDispatched(d command.Dispatcher, name string, id string, args []string, player *domain.Player) {
	if !d.PlayerHasPermission(player, permissions.NEED_ADMIN) {
		d.ThrowPermissionError(id)
		return
	}
	if len(args) != 1 {
		d.ThrowUsageError(id)
		return
	}
	definition, ok := d.Describe(args[0])
	if !ok {
		d.Respond(id, d.Format("command.disable.unknown", d.Trigger(), strings.ToLower(args[0])))
		return
	}
	if definition.Name == name {
		d.ThrowUsageError(id)
		return
	}
	d.Unbind(definition.Name, definition.Handler)
	d.Respond(id, d.Format("command.disable.done", d.Trigger(), definition.Name))
}

func builtinDefinitions() []command.Definition {
	return []command.Definition{
		{
			Name:        "help",
			Handler:     &helpCommand{},
			Usage:       "[command]",
			Description: "Lists the commands or shows how to use one.",
		},
		{
			Name:        "disable",
			Handler:     &disableCommand{},
			Usage:       "<command>",
			Description: "Disables a command until the bot restarts.",
		},
	}
}
