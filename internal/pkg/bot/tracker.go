package bot

import (
	"errors"
	"time"

	"github.com/Xinecraft/swat-julia/pkg/domain"
)

const maxIdAttempts = 32

var ErrIdExhausted = errors.New("could not mint a unique correlation id")

// pendingCommand is one dispatched command, kept until its reply has aged past
// the threshold.
type pendingCommand struct {
	id           string
	bound        *boundCommand
	player       *domain.Player
	dispatchedAt time.Time
	replied      bool
}

// Tracker holds dispatched commands in creation order, indexed by correlation
// id. It is not safe for concurrent use.
type Tracker struct {
	entries  []*pendingCommand
	byId     map[string]*pendingCommand
	idLength int
	newId    func(length int) string
}

func NewTracker(idLength int, newId func(length int) string) *Tracker {
	return &Tracker{
		byId:     map[string]*pendingCommand{},
		idLength: idLength,
		newId:    newId,
	}
}

func (t *Tracker) mintId() (string, error) {
	for i := 0; i < maxIdAttempts; i++ {
		id := t.newId(t.idLength)
		if id == "" {
			continue
		}
		if _, exists := t.byId[id]; !exists {
			return id, nil
		}
	}
	return "", ErrIdExhausted
}

// Add creates an unreplied entry for player with a fresh id.
func (t *Tracker) Add(bound *boundCommand, player *domain.Player, now time.Time) (*pendingCommand, error) {
	id, err := t.mintId()
	if err != nil {
		return nil, err
	}
	entry := &pendingCommand{
		id:           id,
		bound:        bound,
		player:       player,
		dispatchedAt: now,
	}
	t.entries = append(t.entries, entry)
	t.byId[id] = entry
	return entry, nil
}

func (t *Tracker) Get(id string) (*pendingCommand, bool) {
	entry, ok := t.byId[id]
	return entry, ok
}

// Outstanding returns the unreplied entry of player, if any.
func (t *Tracker) Outstanding(player *domain.Player) (*pendingCommand, bool) {
	for _, entry := range t.entries {
		if !entry.replied && entry.player.Is(player) {
			return entry, true
		}
	}
	return nil, false
}

func (t *Tracker) removeAt(i int) {
	delete(t.byId, t.entries[i].id)
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
}

// RemovePlayer drops every entry of player and returns how many were dropped.
func (t *Tracker) RemovePlayer(player *domain.Player) int {
	removed := 0
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].player.Is(player) {
			t.removeAt(i)
			removed++
		}
	}
	return removed
}

// Sweep walks the entries newest first. Unreplied entries older than timeout
// are marked replied and handed to onTimeout; replied entries older than
// threshold are removed.
func (t *Tracker) Sweep(now time.Time, timeout time.Duration, threshold time.Duration, onTimeout func(entry *pendingCommand)) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		entry := t.entries[i]
		switch {
		case !entry.replied && !now.Before(entry.dispatchedAt.Add(timeout)):
			entry.replied = true
			if onTimeout != nil {
				onTimeout(entry)
			}
		case entry.replied && !now.Before(entry.dispatchedAt.Add(threshold)):
			t.removeAt(i)
		}
	}
}

func (t *Tracker) Len() int {
	return len(t.entries)
}

func (t *Tracker) Clear() {
	t.entries = nil
	t.byId = map[string]*pendingCommand{}
}
