package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordle/apps/go-session/internal/game"
	"github.com/robalobadob/wordle/apps/go-session/internal/session"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

// cellAt returns the rune and style drawn at (x, y).
func cellAt(s tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func lineAt(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			sb.WriteRune(rs[0])
		}
	}
	return sb.String()
}

// feed steps a session through actions and presents every frame.
func feed(ui *UI, secret string, actions ...session.Action) {
	st, f, _ := session.Step(session.New(), session.Start{})
	ui.Present(f)
	st, f, _ = session.Step(st, session.SecretLoaded{Word: secret})
	ui.Present(f)
	for _, a := range actions {
		st, f, _ = session.Step(st, a)
		ui.Present(f)
	}
}

func word(w string) []session.Action {
	var out []session.Action
	for _, r := range w {
		out = append(out, session.Letter{Key: r})
	}
	return out
}

func TestUI_DrawsScoredRow(t *testing.T) {
	s := newScreen(t)
	ui := New(s)
	acts := append(word("lolly"), session.Submit{}, session.Validated{Row: 0, Word: "lolly", Valid: true})
	feed(ui, "allot", acts...)

	want := []struct {
		r rune
		m game.Mark
	}{{'L', game.MarkPresent}, {'O', game.MarkPresent}, {'L', game.MarkExact}, {'L', game.MarkAbsent}, {'Y', game.MarkAbsent}}
	for c, w := range want {
		r, st := cellAt(s, gridX+c*cellW+1, gridY)
		if r != w.r {
			t.Errorf("col %d rune %q, want %q", c, r, w.r)
		}
		if _, bg, _ := st.Decompose(); bg != markStyleBg(w.m) {
			t.Errorf("col %d background %v, want %v", c, bg, markStyleBg(w.m))
		}
	}
	if ui.View().Row != 1 {
		t.Errorf("Row %d", ui.View().Row)
	}
}

func markStyleBg(m game.Mark) tcell.Color {
	_, bg, _ := markStyle(m).Decompose()
	return bg
}

func TestUI_KeyboardColours(t *testing.T) {
	s := newScreen(t)
	ui := New(s)
	acts := append(word("lolly"), session.Submit{}, session.Validated{Row: 0, Word: "lolly", Valid: true})
	feed(ui, "allot", acts...)

	// L is the last key of the home row.
	x := gridX + 1 + 8*2
	r, st := cellAt(s, x, keysY+1)
	if r != 'L' {
		t.Fatalf("key at %d is %q", x, r)
	}
	if _, bg, _ := st.Decompose(); bg != colorExact {
		t.Errorf("L key background %v", bg)
	}
}

func TestUI_StatusAndBanner(t *testing.T) {
	s := newScreen(t)
	ui := New(s)
	feed(ui, "allot", append(word("xqzvw"), session.Submit{})...)
	if got := lineAt(s, stateY); !strings.Contains(got, "checking") {
		t.Errorf("status line %q", got)
	}

	ui.Present(mustStep(t, "allot", append(word("xqzvw"), session.Submit{}, session.Validated{Row: 0, Word: "xqzvw", Valid: false})...))
	if got := lineAt(s, stateY); !strings.Contains(got, "not in word list") {
		t.Errorf("status line %q", got)
	}

	ui.Present(session.Frame{
		Phase:  session.PhaseNetworkError,
		Banner: &session.Banner{Kind: session.BannerError, Text: session.NetworkErrorMessage, Retry: true},
	})
	got := lineAt(s, bannerY)
	if !strings.Contains(got, "Could not reach") || !strings.Contains(got, "Ctrl-R") {
		t.Errorf("banner line %q", got)
	}
}

// mustStep returns the last frame produced by running actions on a fresh
// session with the given secret.
func mustStep(t *testing.T, secret string, actions ...session.Action) session.Frame {
	t.Helper()
	st, f, _ := session.Step(session.New(), session.Start{})
	st, f, _ = session.Step(st, session.SecretLoaded{Word: secret})
	for _, a := range actions {
		st, f, _ = session.Step(st, a)
	}
	if f.Empty() {
		t.Fatal("last action produced no frame")
	}
	return f
}

func TestKeyAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want session.Action
		quit bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), session.Letter{Key: 'a'}, false},
		{tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), session.Letter{Key: 'A'}, false},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt), nil, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), session.Submit{}, false},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), session.Backspace{}, false},
		{tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), session.Restart{}, false},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil, true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), nil, true},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), nil, false},
	}
	for _, tc := range cases {
		got, quit := KeyAction(tc.ev)
		if got != tc.want || quit != tc.quit {
			t.Errorf("KeyAction(%s) = %v, %v; want %v, %v", tc.ev.Name(), got, quit, tc.want, tc.quit)
		}
	}
}

func TestLoop_DispatchesUntilEscape(t *testing.T) {
	s := newScreen(t)
	ui := New(s)
	var got []session.Action
	dispatch := func(a session.Action) error {
		got = append(got, a)
		return nil
	}

	s.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	s.InjectKey(tcell.KeyF2, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- ui.Loop(context.Background(), dispatch) }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Loop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not return on Esc")
	}

	want := []session.Action{session.Letter{Key: 'c'}, session.Backspace{}, session.Submit{}}
	if len(got) != len(want) {
		t.Fatalf("dispatched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoop_StopsOnContextAndDispatchError(t *testing.T) {
	s := newScreen(t)
	ui := New(s)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- ui.Loop(ctx, func(session.Action) error { return nil }) }()
	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Loop = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop ignored cancellation")
	}

	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	err := ui.Loop(context.Background(), func(session.Action) error { return session.ErrStopped })
	if !errors.Is(err, session.ErrStopped) {
		t.Errorf("Loop = %v, want ErrStopped", err)
	}
}
