package domain

import "fmt"

type Style int

const (
	StyleDefault Style = iota
	StyleHeader
	StyleInfo
	StyleError
)

var styleColors = map[Style]string{
	StyleDefault: "FFFFFF",
	StyleHeader:  "FFFF00",
	StyleInfo:    "00FF00",
	StyleError:   "FF0000",
}

// Color returns the RGB hex color used in game chat for the style.
func (s Style) Color() string {
	c, ok := styleColors[s]
	if !ok {
		return styleColors[StyleDefault]
	}
	return c
}

// Format wraps text in the in-game color markup.
func (s Style) Format(text string) string {
	return fmt.Sprintf("[c=%s]%s[\\c]", s.Color(), text)
}
