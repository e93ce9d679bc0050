// internal/game/types.go
//
// Core type definitions for the Wordle scorer.
// Defines:
//   - Mark: per-letter result of a guess (exact/present/absent).
//   - Result: the marks for one scored row.
//   - Keyboard: best mark seen per letter across a session.

package game

import (
	"encoding/json"
	"fmt"
	"slices"
)

const (
	// WordLength is the number of letters per guess.
	WordLength = 5
	// MaxRows is the number of guesses allowed per session.
	MaxRows = 6
)

// Mark represents the evaluation result for a single letter in a guess.
// Values are ordered by dominance: a higher Mark always wins when
// aggregating letters for the keyboard.
//   - MarkNone:    not evaluated yet.
//   - MarkAbsent:  letter is not in the secret, or exceeds its count there.
//   - MarkPresent: letter is in the secret but at another position.
//   - MarkExact:   letter is correct and in the correct position.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkAbsent
	MarkPresent
	MarkExact
)

var markNames = [...]string{
	MarkNone:    "",
	MarkAbsent:  "absent",
	MarkPresent: "present",
	MarkExact:   "exact",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// MarshalText encodes the mark by name so JSON payloads read "exact" etc.
func (m Mark) MarshalText() ([]byte, error) {
	if int(m) >= len(markNames) {
		return nil, fmt.Errorf("game: invalid mark %d", uint8(m))
	}
	return []byte(markNames[m]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	for i, name := range markNames {
		if name == string(b) {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", b)
}

// Result holds one mark per position of a scored guess.
type Result [WordLength]Mark

// Won reports whether every position is MarkExact.
func (r Result) Won() bool {
	for _, m := range r {
		if m != MarkExact {
			return false
		}
	}
	return true
}

// Keyboard is the per-letter best mark seen so far, indexed a..z.
// It is a value type; copies are independent.
type Keyboard [26]Mark

// Mark returns the mark recorded for letter, or MarkNone for non-letters.
func (k Keyboard) Mark(letter rune) Mark {
	i := idx(letter)
	if i < 0 {
		return MarkNone
	}
	return k[i]
}

// Record folds a scored guess into the keyboard. A letter is only ever
// upgraded (absent → present → exact), never downgraded. It returns the
// letters whose mark changed, in guess order without repeats.
func (k *Keyboard) Record(guess string, r Result) []rune {
	var changed []rune
	for i := 0; i < len(guess) && i < WordLength; i++ {
		j := idx(rune(guess[i]))
		if j < 0 || r[i] <= k[j] {
			continue
		}
		if c := rune(guess[i]); !slices.Contains(changed, c) {
			changed = append(changed, c)
		}
		k[j] = r[i]
	}
	return changed
}

// MarshalJSON encodes only the evaluated letters, e.g. {"a":"exact","q":"absent"}.
func (k Keyboard) MarshalJSON() ([]byte, error) {
	out := make(map[string]Mark)
	for i, m := range k {
		if m != MarkNone {
			out[string(rune('a'+i))] = m
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (k *Keyboard) UnmarshalJSON(b []byte) error {
	var in map[string]Mark
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*k = Keyboard{}
	for letter, m := range in {
		if len(letter) != 1 || idx(rune(letter[0])) < 0 {
			return fmt.Errorf("game: bad keyboard letter %q", letter)
		}
		k[idx(rune(letter[0]))] = m
	}
	return nil
}
