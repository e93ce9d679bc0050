// internal/session/machine.go
//
// The session state machine.
//
//   loading → awaiting_input ⇄ validating → {awaiting_input, won, lost, network_error}
//
// Step is pure: it never performs I/O. When the session needs the secret or
// a dictionary verdict it returns an Effect, and the driver (Runner) feeds
// the outcome back as an Action. Input that does not apply to the current
// phase is ignored and yields an empty Frame with the state unchanged.

package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-session/internal/game"
)

// ErrBadSecret is recorded when the word source returns something that is
// not a playable word.
var ErrBadSecret = errors.New("session: word source returned an invalid word")

// wonText is the success banner, the confetti of the original header.
const wonText = "🎊"

// Step applies a to s and returns the next state, the frame to render and an
// optional effect for the driver to perform.
func Step(s State, a Action) (State, Frame, Effect) {
	switch a := a.(type) {
	case Start:
		if s.Phase != PhaseLoading {
			return s, Frame{}, nil
		}
		return s, frameOf(s), FetchSecret{}

	case Restart:
		if !s.Phase.Terminal() {
			return s, Frame{}, nil
		}
		next := New()
		f := frameOf(next)
		f.Reset = true
		return next, f, FetchSecret{}

	case SecretLoaded:
		if s.Phase != PhaseLoading {
			return s, Frame{}, nil
		}
		w := game.Normalize(a.Word)
		if !game.ValidWord(w) {
			return fail(s, fmt.Errorf("%w: %q", ErrBadSecret, a.Word))
		}
		s.Secret = w
		s.Phase = PhaseAwaitingInput
		return s, frameOf(s), nil

	case SecretFailed:
		if s.Phase != PhaseLoading {
			return s, Frame{}, nil
		}
		return fail(s, a.Err)

	case Letter:
		if s.Phase != PhaseAwaitingInput || !game.IsLetter(a.Key) || len(s.Buffer) >= game.WordLength {
			return s, Frame{}, nil
		}
		l := string(game.Lower(a.Key))
		col := len(s.Buffer)
		s.Buffer += l
		f := frameOf(s)
		f.Cells = []CellUpdate{{Row: s.Row, Col: col, Letter: l}}
		return s, f, nil

	case Backspace:
		if s.Phase != PhaseAwaitingInput || s.Buffer == "" {
			return s, Frame{}, nil
		}
		s.Buffer = s.Buffer[:len(s.Buffer)-1]
		f := frameOf(s)
		f.Cells = []CellUpdate{{Row: s.Row, Col: len(s.Buffer)}}
		return s, f, nil

	case Submit:
		if s.Phase != PhaseAwaitingInput || len(s.Buffer) != game.WordLength {
			return s, Frame{}, nil
		}
		s.Phase = PhaseValidating
		f := frameOf(s)
		f.RowState = RowSubmitting
		return s, f, ValidateWord{Row: s.Row, Word: s.Buffer}

	case Validated:
		if s.Phase != PhaseValidating || a.Row != s.Row || a.Word != s.Buffer {
			return s, Frame{}, nil
		}
		if !a.Valid {
			s.Phase = PhaseAwaitingInput
			f := frameOf(s)
			f.RowState = RowRejected
			return s, f, nil
		}
		return scoreRow(s)

	case ValidationFailed:
		if s.Phase != PhaseValidating || a.Row != s.Row {
			return s, Frame{}, nil
		}
		return fail(s, a.Err)
	}
	return s, Frame{}, nil
}

// scoreRow applies a dictionary-confirmed buffer to the active row and
// decides between won, lost and the next row.
func scoreRow(s State) (State, Frame, Effect) {
	guess := s.Buffer
	res := game.Score(guess, s.Secret)
	s.Guesses[s.Row] = guess
	s.Results[s.Row] = res

	cells := make([]CellUpdate, 0, game.WordLength)
	for i := 0; i < game.WordLength; i++ {
		cells = append(cells, CellUpdate{Row: s.Row, Col: i, Letter: guess[i : i+1], Mark: res[i]})
	}
	var keys []KeyUpdate
	for _, l := range s.Keyboard.Record(guess, res) {
		keys = append(keys, KeyUpdate{Letter: string(l), Mark: s.Keyboard.Mark(l)})
	}

	var banner *Banner
	switch {
	case guess == s.Secret:
		s.Phase = PhaseWon
		banner = &Banner{Kind: BannerWon, Text: wonText}
	case s.Row == game.MaxRows-1:
		s.Phase = PhaseLost
		banner = &Banner{Kind: BannerLost, Text: "'" + strings.ToUpper(s.Secret) + "'", Answer: s.Secret}
	default:
		s.Phase = PhaseAwaitingInput
		s.Row++
		s.Buffer = ""
	}

	f := frameOf(s)
	f.Cells = cells
	f.Keys = keys
	f.RowState = RowSettled
	f.Banner = banner
	return s, f, nil
}

// fail moves the session to the terminal network error phase.
func fail(s State, err error) (State, Frame, Effect) {
	if err == nil {
		err = errors.New("session: unknown network failure")
	}
	s.Phase = PhaseNetworkError
	s.Err = err
	f := frameOf(s)
	f.Banner = &Banner{Kind: BannerError, Text: NetworkErrorMessage, Retry: true}
	return s, f, nil
}

func frameOf(s State) Frame {
	return Frame{Phase: s.Phase, Row: s.Row}
}
