package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs []string
		wantOk   bool
	}{
		{name: "plain command", text: "!help", wantName: "help", wantArgs: []string{}, wantOk: true},
		{name: "arguments", text: "!Kick  Player1   now", wantName: "kick", wantArgs: []string{"Player1", "now"}, wantOk: true},
		{name: "space after trigger", text: "! help", wantName: "help", wantArgs: []string{}, wantOk: true},
		{name: "doubled trigger", text: "!!help", wantOk: false},
		{name: "trigger only", text: "!", wantOk: false},
		{name: "trigger and spaces", text: "!   ", wantOk: false},
		{name: "no trigger", text: "help", wantOk: false},
		{name: "trigger inside text", text: "hello !help", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := Parse("!", tt.text)
			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				return
			}
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestParse_EmptyTrigger(t *testing.T) {
	assert.False(t, Is("", "!help"))
}

func TestValidTrigger(t *testing.T) {
	assert.True(t, ValidTrigger("!"))
	assert.True(t, ValidTrigger("§"))
	assert.False(t, ValidTrigger(""))
	assert.False(t, ValidTrigger("!!"))
	assert.False(t, ValidTrigger(" "))
}
