package domain

import "strings"

// Player is a connected game client. Identity is the server-assigned ID; the
// nick is only used for display and as a fallback when no ID is known.
type Player struct {
	id   string
	nick string
}

func NewPlayer(nick string, id string) *Player {
	return &Player{
		id:   strings.TrimSpace(id),
		nick: strings.TrimSpace(nick),
	}
}

func (p *Player) Id() string {
	return p.id
}

func (p *Player) Nick() string {
	return p.nick
}

// Key is the identity used to index players.
func (p *Player) Key() string {
	if p.id == "" {
		return "nick:" + p.nick
	}
	return "id:" + p.id
}

func (p *Player) Is(other *Player) bool {
	if p == nil || other == nil {
		return false
	}
	return p.Key() == other.Key()
}

func (p *Player) String() string {
	return p.nick
}
