package session

import (
	"strings"
	"unicode/utf8"
)

// ParseKey maps a renderer key name to an action. Names follow DOM
// KeyboardEvent.key ("Enter", "Backspace", "a"); "Restart" is the retry
// control. Any other single character becomes a Letter, which Step rejects
// if it is not a letter. It returns false for unknown multi-character names.
func ParseKey(name string) (Action, bool) {
	switch strings.ToLower(name) {
	case "enter", "return":
		return Submit{}, true
	case "backspace", "delete":
		return Backspace{}, true
	case "restart", "reload":
		return Restart{}, true
	}
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError && size == len(name) {
		return Letter{Key: r}, true
	}
	return nil, false
}
