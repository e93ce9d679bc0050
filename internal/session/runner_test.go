package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeWords struct {
	word string
	err  error
}

func (f fakeWords) Word(ctx context.Context) (string, error) { return f.word, f.err }

type fakeDict struct {
	mu      sync.Mutex
	calls   []string
	valid   map[string]bool
	err     error
	release chan struct{} // when set, Validate waits for it
}

func (f *fakeDict) Validate(ctx context.Context, w string) (bool, error) {
	f.mu.Lock()
	f.calls = append(f.calls, w)
	rel := f.release
	f.mu.Unlock()
	if rel != nil {
		<-rel
	}
	return f.valid[w], f.err
}

func (f *fakeDict) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// startRunner runs a session and returns a channel of its frames.
func startRunner(t *testing.T, words WordSource, dict Validator) (*Runner, <-chan Frame) {
	t.Helper()
	frames := make(chan Frame, 64)
	r := NewRunner(words, dict, PresenterFunc(func(f Frame) { frames <- f }))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		<-r.Done()
	})
	go func() { _ = r.Run(ctx) }()
	return r, frames
}

// waitPhase reads frames until one reports phase p.
func waitPhase(t *testing.T, frames <-chan Frame, p Phase) Frame {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case f := <-frames:
			if f.Phase == p {
				return f
			}
		case <-timeout:
			t.Fatalf("timed out waiting for phase %q", p)
		}
	}
}

func send(t *testing.T, r *Runner, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if err := r.Dispatch(a); err != nil {
			t.Fatalf("Dispatch(%T): %v", a, err)
		}
	}
}

func TestRunner_PlaysToWin(t *testing.T) {
	dict := &fakeDict{valid: map[string]bool{"lolly": true, "allot": true}}
	r, frames := startRunner(t, fakeWords{word: "allot"}, dict)
	waitPhase(t, frames, PhaseAwaitingInput)

	send(t, r, Letter{'l'}, Letter{'o'}, Letter{'l'}, Letter{'l'}, Letter{'y'}, Submit{})
	waitPhase(t, frames, PhaseValidating)
	f := waitPhase(t, frames, PhaseAwaitingInput)
	if f.Row != 1 || len(f.Cells) != 5 {
		t.Errorf("scored frame %+v", f)
	}

	send(t, r, Letter{'a'}, Letter{'l'}, Letter{'l'}, Letter{'o'}, Letter{'t'}, Submit{})
	f = waitPhase(t, frames, PhaseWon)
	if f.Banner == nil || f.Banner.Kind != BannerWon {
		t.Errorf("banner %+v", f.Banner)
	}
	if got := dict.Calls(); len(got) != 2 || got[0] != "lolly" || got[1] != "allot" {
		t.Errorf("dictionary calls %v", got)
	}
}

func TestRunner_WordSourceFailure(t *testing.T) {
	dict := &fakeDict{}
	r, frames := startRunner(t, fakeWords{err: errors.New("no route to host")}, dict)
	f := waitPhase(t, frames, PhaseNetworkError)
	if f.Banner == nil || f.Banner.Text != NetworkErrorMessage {
		t.Errorf("banner %+v", f.Banner)
	}

	send(t, r, Letter{'c'}, Letter{'r'}, Letter{'a'}, Letter{'n'}, Letter{'e'}, Submit{})
	// Give the loop a chance to (not) act on the input.
	time.Sleep(20 * time.Millisecond)
	if calls := dict.Calls(); len(calls) != 0 {
		t.Errorf("dictionary called after failure: %v", calls)
	}
}

func TestRunner_SingleValidationInFlight(t *testing.T) {
	dict := &fakeDict{valid: map[string]bool{"crane": true}, release: make(chan struct{})}
	r, frames := startRunner(t, fakeWords{word: "allot"}, dict)
	waitPhase(t, frames, PhaseAwaitingInput)

	send(t, r, Letter{'c'}, Letter{'r'}, Letter{'a'}, Letter{'n'}, Letter{'e'}, Submit{})
	waitPhase(t, frames, PhaseValidating)
	// Repeated submits and typing while the call is pending are dropped.
	send(t, r, Submit{}, Submit{}, Backspace{}, Letter{'x'})
	time.Sleep(20 * time.Millisecond)
	if calls := dict.Calls(); len(calls) != 1 {
		t.Fatalf("dictionary calls %v, want exactly one", calls)
	}
	close(dict.release)

	f := waitPhase(t, frames, PhaseAwaitingInput)
	if f.Row != 1 {
		t.Errorf("Row %d, want 1", f.Row)
	}
}

func TestRunner_RestartAfterFailure(t *testing.T) {
	ws := &flakyWords{fail: 1, word: "allot"}
	r, frames := startRunner(t, ws, &fakeDict{})
	waitPhase(t, frames, PhaseNetworkError)

	send(t, r, Restart{})
	f := waitPhase(t, frames, PhaseLoading)
	if !f.Reset {
		t.Error("restart frame should reset the view")
	}
	waitPhase(t, frames, PhaseAwaitingInput)
}

func TestRunner_DispatchAfterStop(t *testing.T) {
	r := NewRunner(fakeWords{word: "allot"}, &fakeDict{}, PresenterFunc(func(Frame) {}))
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if err := r.Dispatch(Submit{}); !errors.Is(err, ErrStopped) {
		t.Errorf("Dispatch = %v, want ErrStopped", err)
	}
}

// flakyWords fails the first n calls.
type flakyWords struct {
	mu   sync.Mutex
	fail int
	word string
}

func (f *flakyWords) Word(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail > 0 {
		f.fail--
		return "", errors.New("503 service unavailable")
	}
	return f.word, nil
}

func TestFeed_SubscribeAndView(t *testing.T) {
	feed := NewFeed()
	v, ch := feed.Subscribe()
	defer feed.Unsubscribe(ch)
	if v.Phase != PhaseLoading {
		t.Errorf("initial Phase %q", v.Phase)
	}

	s, f, _ := Step(New(), Start{})
	feed.Present(f)
	_, f, _ = Step(s, SecretLoaded{Word: "allot"})
	feed.Present(f)

	if got := <-ch; got.Phase != PhaseLoading {
		t.Errorf("first frame %q", got.Phase)
	}
	if got := <-ch; got.Phase != PhaseAwaitingInput {
		t.Errorf("second frame %q", got.Phase)
	}
	if feed.View().Phase != PhaseAwaitingInput {
		t.Errorf("View Phase %q", feed.View().Phase)
	}
}

func TestFeed_UnsubscribeClosesChannel(t *testing.T) {
	feed := NewFeed()
	_, ch := feed.Subscribe()
	feed.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	feed.Present(Frame{Phase: PhaseLoading}) // must not panic on closed subscriber
}

func TestFeed_LaggingSubscriberDoesNotBlock(t *testing.T) {
	feed := NewFeed()
	_, ch := feed.Subscribe()
	defer feed.Unsubscribe(ch)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			feed.Present(Frame{Phase: PhaseAwaitingInput, Row: i % 6})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Present blocked on a full subscriber")
	}
}
