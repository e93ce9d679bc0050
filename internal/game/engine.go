// internal/game/engine.go
//
// Guess scoring for a single Wordle row.
// Responsibilities:
//   - Score a guess against the secret with the two‑pass algorithm.
//   - Normalize and validate letters and words before they reach the scorer.
//
// Notes:
//   - Score is pure: identical inputs always yield identical results.
//   - The letter pool is a fixed [26]int table, never a map.
package game

import "strings"

// Score implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Exact.
//   - Count remaining (non‑exact) secret letters by letter index.
//
// Pass 2:
//   - For each non‑exact guess letter, left to right: if there is remaining
//     count for that letter, mark Present and decrement the count;
//     otherwise mark Absent.
//
// The number of Present+Exact marks for a letter therefore never exceeds its
// count in the secret, and surplus duplicates further right are Absent.
// Both words are expected to be normalized (see ValidWord); positions beyond
// either word, or holding non‑letters, are marked Absent.
func Score(guess, secret string) Result {
	var res Result

	// Letter frequency for the non‑exact positions (a–z).
	var counts [26]int

	// First pass: mark exact and collect counts for remaining secret letters.
	for i := 0; i < WordLength; i++ {
		if i >= len(guess) || i >= len(secret) {
			continue
		}
		if guess[i] == secret[i] && idx(rune(guess[i])) >= 0 {
			res[i] = MarkExact
		} else if j := idx(rune(secret[i])); j >= 0 {
			counts[j]++
		}
	}

	// Second pass: resolve presents/absents for non‑exact tiles.
	for i := 0; i < WordLength; i++ {
		if res[i] == MarkExact {
			continue
		}
		j := -1
		if i < len(guess) {
			j = idx(rune(guess[i]))
		}
		if j >= 0 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// IsLetter reports whether r is an ASCII letter, either case.
func IsLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Lower maps an ASCII letter to lowercase. Other runes are returned as is.
func Lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Normalize trims surrounding space and lowercases w.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// ValidWord reports whether w is exactly WordLength lowercase a–z letters.
func ValidWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// idx maps a lowercase ASCII letter rune to 0..25, or -1 for anything else.
func idx(r rune) int {
	if r < 'a' || r > 'z' {
		return -1
	}
	return int(r - 'a')
}
