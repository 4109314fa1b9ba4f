package command

import (
	"strings"
	"unicode/utf8"
)

// Parse recognizes a trigger-prefixed command line. It returns the lower-cased
// command name and its positional arguments. A doubled trigger ("!!") and a
// trigger without any following word are not commands.
func Parse(trigger string, text string) (name string, args []string, ok bool) {
	if trigger == "" || !strings.HasPrefix(text, trigger) {
		return "", nil, false
	}
	rest := strings.TrimPrefix(text, trigger)
	if strings.HasPrefix(rest, trigger) {
		return "", nil, false
	}
	words := strings.Fields(rest)
	if len(words) == 0 {
		return "", nil, false
	}
	return strings.ToLower(words[0]), words[1:], true
}

// Is reports whether the text would be hidden from chat as a command attempt.
func Is(trigger string, text string) bool {
	_, _, ok := Parse(trigger, text)
	return ok
}

// ValidTrigger reports whether trigger is exactly one non-space character.
func ValidTrigger(trigger string) bool {
	if utf8.RuneCountInString(trigger) != 1 {
		return false
	}
	return strings.TrimSpace(trigger) != ""
}
