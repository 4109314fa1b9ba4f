package domain

import "strings"

type PlayerList interface {
	All() []*Player
	Find(nick string) *Player
	Add(player *Player)
	Remove(player *Player)
	Len() int
}

type playerList struct {
	players []*Player
}

func (l *playerList) All() []*Player {
	list := make([]*Player, len(l.players))
	copy(list, l.players)
	return list
}

func (l *playerList) Find(nick string) *Player {
	for _, p := range l.players {
		if strings.EqualFold(p.Nick(), nick) {
			return p
		}
	}
	return nil
}

func (l *playerList) Add(player *Player) {
	if player == nil || len(strings.TrimSpace(player.Nick())) == 0 {
		return
	}
	for i, p := range l.players {
		if p.Is(player) {
			l.players[i] = player
			return
		}
	}
	l.players = append(l.players, player)
}

func (l *playerList) Remove(player *Player) {
	for i, p := range l.players {
		if p.Is(player) {
			l.players = append(l.players[:i], l.players[i+1:]...)
			return
		}
	}
}

func (l *playerList) Len() int {
	return len(l.players)
}

func NewPlayerList(players ...*Player) PlayerList {
	pl := &playerList{players: []*Player{}}
	for _, p := range players {
		pl.Add(p)
	}
	return pl
}
