// internal/session/runner.go
//
// Runner drives one session: it owns the State, applies actions in order on
// a single goroutine, hands frames to the Presenter and performs effects.
//
// Concurrency model:
//   - State is only touched by the Run loop; no locks guard it.
//   - Each Effect runs in its own goroutine and reports back through the
//     same action queue. Step never issues a second effect while one is
//     pending, so at most one call to the word service is in flight.
//   - Input arriving while a call is pending is not queued for later; Step
//     drops it because the phase no longer accepts it.
//   - Pending calls are not cancelled or timed out; they end with the
//     context passed to Run.

package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// WordSource supplies the secret word of a session.
type WordSource interface {
	Word(ctx context.Context) (string, error)
}

// Validator is the dictionary predicate for submitted guesses.
type Validator interface {
	Validate(ctx context.Context, word string) (bool, error)
}

// Presenter renders frames. Present is called from the Run goroutine, one
// frame at a time.
type Presenter interface {
	Present(f Frame)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Frame)

// Present calls fn(f).
func (fn PresenterFunc) Present(f Frame) { fn(f) }

// ErrStopped is returned by Dispatch once the runner has exited.
var ErrStopped = errors.New("session: runner stopped")

const queueSize = 32

// Runner executes a session against its collaborators.
type Runner struct {
	words   WordSource
	dict    Validator
	out     Presenter
	actions chan Action
	done    chan struct{}
	state   State
}

// NewRunner wires a session to its word source, dictionary and presenter.
func NewRunner(words WordSource, dict Validator, out Presenter) *Runner {
	return &Runner{
		words:   words,
		dict:    dict,
		out:     out,
		actions: make(chan Action, queueSize),
		done:    make(chan struct{}),
		state:   New(),
	}
}

// Dispatch queues an action for the Run loop. It blocks only while the
// queue is full and returns ErrStopped after Run has returned.
func (r *Runner) Dispatch(a Action) error {
	select {
	case <-r.done:
		return ErrStopped
	default:
	}
	select {
	case r.actions <- a:
		return nil
	case <-r.done:
		return ErrStopped
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Run starts the session and processes actions until ctx is cancelled.
// Run must be called once.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	r.apply(ctx, Start{})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-r.actions:
			r.apply(ctx, a)
		}
	}
}

func (r *Runner) apply(ctx context.Context, a Action) {
	prev := r.state.Phase
	next, frame, eff := Step(r.state, a)
	r.state = next
	if next.Phase != prev {
		ev := log.Debug()
		if next.Phase == PhaseNetworkError {
			ev = log.Warn().Err(next.Err)
		}
		ev.Str("from", string(prev)).Str("to", string(next.Phase)).Int("row", next.Row).Msg("session transition")
	}
	if !frame.Empty() {
		r.out.Present(frame)
	}
	if eff != nil {
		go r.perform(ctx, eff)
	}
}

// perform runs one effect and posts its outcome. Errors never escape: they
// become SecretFailed / ValidationFailed actions.
func (r *Runner) perform(ctx context.Context, eff Effect) {
	var result Action
	switch e := eff.(type) {
	case FetchSecret:
		w, err := r.words.Word(ctx)
		if err != nil {
			result = SecretFailed{Err: err}
		} else {
			result = SecretLoaded{Word: w}
		}
	case ValidateWord:
		ok, err := r.dict.Validate(ctx, e.Word)
		if err != nil {
			result = ValidationFailed{Row: e.Row, Err: err}
		} else {
			result = Validated{Row: e.Row, Word: e.Word, Valid: ok}
		}
	default:
		return
	}
	if err := r.Dispatch(result); err != nil {
		log.Debug().Err(err).Msg("effect result dropped")
	}
}
