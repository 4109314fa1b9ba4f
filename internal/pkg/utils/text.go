package utils

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Whitespace control characters become spaces so they still separate words.
func controlChars() transform.Transformer {
	return transform.Chain(
		runes.Map(func(r rune) rune {
			if unicode.IsControl(r) && unicode.IsSpace(r) {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.In(unicode.Cc)),
	)
}

// Normalize strips control characters and surrounding whitespace from a chat
// line.
func Normalize(text string) string {
	out, _, err := transform.String(controlChars(), text)
	if err != nil {
		out = text
	}
	return strings.TrimSpace(out)
}

// Lines splits text on line breaks and drops blank lines.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func RandomID(length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(b)
}
