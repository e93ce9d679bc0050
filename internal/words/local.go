package words

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/go-session/internal/daily"
)

// Mode selects how Local picks the secret.
type Mode string

const (
	ModeRandom Mode = "random" // a fresh random answer per session
	ModeDaily  Mode = "daily"  // the same answer for everyone on a UTC day
)

// ErrNotLoaded is returned when Init has not produced any answers.
var ErrNotLoaded = errors.New("words: lists not loaded")

// Local serves secrets and dictionary checks from the loaded lists, with
// no network. It satisfies session.WordSource and session.Validator.
type Local struct {
	Mode Mode
	Salt string           // daily mode HMAC key
	Now  func() time.Time // defaults to time.Now
}

// Word returns the secret for a new session.
func (l Local) Word(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(answers) == 0 {
		return "", ErrNotLoaded
	}
	if l.Mode == ModeDaily {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		return answers[daily.WordIndex(now(), l.Salt, len(answers))], nil
	}
	return RandomAnswer(), nil
}

// Validate reports whether word is an allowed guess.
func (l Local) Validate(ctx context.Context, word string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if allowedSet == nil {
		return false, ErrNotLoaded
	}
	return IsAllowed(word), nil
}
