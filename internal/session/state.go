// internal/session/state.go
//
// Session state for a single game.
// The whole session is one State value: Step takes a State and returns the
// next one, so transitions can be tested without any renderer or network.

package session

import "github.com/robalobadob/wordle/apps/go-session/internal/game"

// Phase is the coarse lifecycle position of a session.
type Phase string

const (
	PhaseLoading       Phase = "loading"
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseValidating    Phase = "validating"
	PhaseWon           Phase = "won"
	PhaseLost          Phase = "lost"
	PhaseNetworkError  Phase = "network_error"
)

// Terminal reports whether no further game input is accepted.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost || p == PhaseNetworkError
}

// State holds everything a session knows.
type State struct {
	Phase    Phase
	Secret   string // lowercase, game.WordLength letters once loaded
	Row      int    // active row, 0..game.MaxRows-1
	Buffer   string // pending letters of the active row
	Guesses  [game.MaxRows]string
	Results  [game.MaxRows]game.Result
	Keyboard game.Keyboard
	Err      error // cause of PhaseNetworkError
}

// New returns the initial state of a session: loading, nothing typed.
func New() State {
	return State{Phase: PhaseLoading}
}
