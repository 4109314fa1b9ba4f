package commands

import (
	"strings"

	"github.com/Xinecraft/swat-julia/pkg/bot"
	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/domain"
)

func init() {
	bot.HandleCommand(command.Definition{
		Name:        "echo",
		Handler:     &EchoCommand{},
		Usage:       "<text>",
		Description: "Repeats the text back to you.",
	})
}

type EchoCommand struct {
}

func (e *EchoCommand) OnCommandDispatched(dispatcher command.Dispatcher, _ string, id string, args []string, _ *domain.Player) {
	if len(args) == 0 {
		dispatcher.ThrowUsageError(id)
		return
	}
	dispatcher.Respond(id, strings.Join(args, " "))
}
