package bot

import (
	"github.com/Xinecraft/swat-julia/internal/pkg/utils"
	"github.com/Xinecraft/swat-julia/pkg/domain"
)

// claim returns the unreplied entry for id and marks it replied. Only the
// first reply for an id gets through.
func (d *Dispatcher) claim(id string) (*pendingCommand, bool) {
	if d.closed {
		return nil, false
	}
	entry, ok := d.tracker.Get(id)
	if !ok || entry.replied {
		return nil, false
	}
	entry.replied = true
	return entry, true
}

// Respond sends text to the player of command id, one line per line break.
func (d *Dispatcher) Respond(id string, text string) {
	entry, ok := d.claim(id)
	if !ok {
		return
	}
	for _, line := range utils.Lines(text) {
		d.deliver(entry.player, line, domain.StyleDefault)
	}
}

// ThrowError replies with message, a catalog key or format string that
// receives the command name.
func (d *Dispatcher) ThrowError(id string, message string) {
	entry, ok := d.claim(id)
	if !ok {
		return
	}
	text := d.Format(message, d.settings.Trigger+entry.bound.name)
	for _, line := range utils.Lines(text) {
		d.deliver(entry.player, line, domain.StyleError)
	}
}

func (d *Dispatcher) ThrowUsageError(id string) {
	d.ThrowError(id, "command.error.usage")
}

func (d *Dispatcher) ThrowPermissionError(id string) {
	d.ThrowError(id, "command.error.permission")
}
