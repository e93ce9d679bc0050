// internal/tui/tui.go
//
// Terminal renderer for a game session.
//
// UI is a session.Presenter: every frame is folded into a session.View and
// the whole screen is redrawn from that view. Loop reads terminal events
// and turns key presses into session actions.
//
// Layout (columns are fixed, the screen is not centred):
//
//	WORDLE
//
//	 A  L  L  O  T      6 rows × 5 cells, 3 columns per cell + gap
//	 ·  ·  ·  ·  ·
//	 ...
//	checking…           row state
//
//	 Q W E R T Y U I O P
//	  A S D F G H J K L
//	   Z X C V B N M
//
//	🎊                  banner
//	Enter submit  Backspace delete  Ctrl-R restart  Esc quit

package tui

import (
	"context"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/robalobadob/wordle/apps/go-session/internal/game"
	"github.com/robalobadob/wordle/apps/go-session/internal/session"
)

// Layout.
const (
	gridX    = 1
	gridY    = 2
	cellW    = 4 // 3 wide + 1 gap
	stateY   = gridY + game.MaxRows + 1
	keysY    = stateY + 2
	bannerY  = keysY + len(keyRows) + 1
	helpY    = bannerY + 2
	helpText = "Enter submit  Backspace delete  Ctrl-R restart  Esc quit"
)

var keyRows = [...]string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// Colours follow the familiar board.
var (
	colorExact   = tcell.NewRGBColor(83, 141, 78)
	colorPresent = tcell.NewRGBColor(181, 159, 59)
	colorAbsent  = tcell.NewRGBColor(58, 58, 60)
	colorReject  = tcell.NewRGBColor(255, 80, 80)
)

// UI draws session frames onto a tcell screen. It is safe to Present from
// the runner goroutine while Loop runs on another.
type UI struct {
	mu     sync.Mutex
	screen tcell.Screen
	view   session.View
}

// New wraps an initialised screen.
func New(screen tcell.Screen) *UI {
	return &UI{screen: screen, view: session.NewView()}
}

// Present applies f and redraws.
func (u *UI) Present(f session.Frame) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.view.Apply(f)
	u.draw()
	u.screen.Show()
}

// View returns the view currently on screen.
func (u *UI) View() session.View {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.view
}

func (u *UI) redraw() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.draw()
	u.screen.Sync()
}

// KeyAction maps a key event to a session action. quit reports Esc or
// Ctrl-C; a nil action with quit false means the key is ignored.
func KeyAction(ev *tcell.EventKey) (a session.Action, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyEnter:
		return session.Submit{}, false
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return session.Backspace{}, false
	case tcell.KeyCtrlR:
		return session.Restart{}, false
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return nil, false
		}
		return session.Letter{Key: ev.Rune()}, false
	}
	return nil, false
}

// Loop handles terminal events until the user quits, the screen is
// finalised, ctx ends, or dispatch fails.
func (u *UI) Loop(ctx context.Context, dispatch func(session.Action) error) error {
	go func() {
		<-ctx.Done()
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventResize:
			u.redraw()
		case *tcell.EventKey:
			a, quit := KeyAction(ev)
			if quit {
				return nil
			}
			if a == nil {
				continue
			}
			if err := dispatch(a); err != nil {
				return err
			}
		}
	}
}

// ----------------------------- drawing --------------------------------------

func (u *UI) draw() {
	s := u.screen
	v := &u.view
	s.Clear()
	plain := tcell.StyleDefault

	drawText(s, gridX, 0, plain.Bold(true), "WORDLE")

	for r := 0; r < game.MaxRows; r++ {
		for c := 0; c < game.WordLength; c++ {
			cell := v.Board[r][c]
			st := markStyle(cell.Mark)
			ch := '·'
			if cell.Letter != "" {
				ch = unicode.ToUpper([]rune(cell.Letter)[0])
				if cell.Mark == game.MarkNone {
					st = plain.Bold(true)
					if r == v.Row && v.RowState == session.RowRejected {
						st = st.Foreground(colorReject)
					}
				}
			}
			x := gridX + c*cellW
			s.SetContent(x, gridY+r, ' ', nil, st)
			s.SetContent(x+1, gridY+r, ch, nil, st)
			s.SetContent(x+2, gridY+r, ' ', nil, st)
		}
	}

	drawText(s, gridX, stateY, plain.Dim(true), statusLine(v))

	for i, row := range keyRows {
		x := gridX + i
		for _, k := range row {
			st := markStyle(v.Keyboard.Mark(k))
			s.SetContent(x, keysY+i, unicode.ToUpper(k), nil, st)
			x += 2
		}
	}

	if b := v.Banner; b != nil {
		st := plain.Bold(true)
		text := b.Text
		switch b.Kind {
		case session.BannerWon:
			st = st.Foreground(colorExact)
		case session.BannerLost:
			st = st.Foreground(colorPresent)
		case session.BannerError:
			st = st.Foreground(colorReject)
		}
		if b.Retry {
			text += "  (Ctrl-R to retry)"
		}
		drawText(s, gridX, bannerY, st, text)
	}

	drawText(s, gridX, helpY, plain.Dim(true), helpText)
}

// statusLine describes what the session is doing right now.
func statusLine(v *session.View) string {
	switch {
	case v.Phase == session.PhaseLoading:
		return "loading word…"
	case v.RowState == session.RowSubmitting:
		return "checking…"
	case v.RowState == session.RowRejected:
		return "not in word list"
	}
	return ""
}

func markStyle(m game.Mark) tcell.Style {
	st := tcell.StyleDefault
	switch m {
	case game.MarkExact:
		return st.Background(colorExact).Foreground(tcell.ColorWhite)
	case game.MarkPresent:
		return st.Background(colorPresent).Foreground(tcell.ColorWhite)
	case game.MarkAbsent:
		return st.Background(colorAbsent).Foreground(tcell.ColorWhite)
	}
	return st
}

// drawText writes str from (x, y), advancing by each rune's display width.
func drawText(s tcell.Screen, x, y int, st tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}
