// internal/session/frame.go
//
// Declarative render output of the session.
//   - Frame: what changed in one transition (cells, keys, row state, banner).
//   - View:  the accumulation of all frames so far, for renderers that draw
//            the whole screen or need a snapshot.
//
// Nothing here touches a display; presenters decide how to draw.

package session

import (
	"strings"

	"github.com/robalobadob/wordle/apps/go-session/internal/game"
)

// NetworkErrorMessage is the fixed text shown in place of the board when the
// word service fails.
const NetworkErrorMessage = "Could not reach the word service. Restart to try again."

// RowState is a transient indication on the active row.
type RowState string

const (
	RowIdle       RowState = ""
	RowSubmitting RowState = "submitting" // spinner while the dictionary is asked
	RowRejected   RowState = "rejected"   // shake: word not in dictionary
	RowSettled    RowState = "settled"    // scored; spinner stops
)

// BannerKind identifies a terminal banner.
type BannerKind string

const (
	BannerWon   BannerKind = "won"
	BannerLost  BannerKind = "lost"
	BannerError BannerKind = "error"
)

// Banner is shown once the session ends.
type Banner struct {
	Kind   BannerKind `json:"kind"`
	Text   string     `json:"text"`
	Answer string     `json:"answer,omitempty"` // revealed secret on loss
	Retry  bool       `json:"retry,omitempty"`  // show the restart control
}

// CellUpdate sets one grid cell. An empty Letter clears it.
type CellUpdate struct {
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Letter string    `json:"letter"`
	Mark   game.Mark `json:"mark"`
}

// KeyUpdate sets the mark shown on one keyboard key.
type KeyUpdate struct {
	Letter string    `json:"letter"`
	Mark   game.Mark `json:"mark"`
}

// Frame describes the visible effect of one transition.
type Frame struct {
	Phase    Phase        `json:"phase"`
	Row      int          `json:"row"`
	Reset    bool         `json:"reset,omitempty"` // clear everything before applying
	Cells    []CellUpdate `json:"cells,omitempty"`
	Keys     []KeyUpdate  `json:"keys,omitempty"`
	RowState RowState     `json:"rowState,omitempty"`
	Banner   *Banner      `json:"banner,omitempty"`
}

// Empty reports whether the frame carries nothing to render. Step returns an
// empty frame for ignored input.
func (f Frame) Empty() bool {
	return f.Phase == ""
}

// Cell is one grid square in a View.
type Cell struct {
	Letter string    `json:"letter"`
	Mark   game.Mark `json:"mark"`
}

// View is the full picture a renderer draws.
type View struct {
	Phase    Phase                               `json:"phase"`
	Row      int                                 `json:"row"`
	Board    [game.MaxRows][game.WordLength]Cell `json:"board"`
	Keyboard game.Keyboard                       `json:"keyboard"`
	RowState RowState                            `json:"rowState,omitempty"`
	Banner   *Banner                             `json:"banner,omitempty"`
}

// NewView returns the view of a session that has not loaded yet.
func NewView() View {
	return View{Phase: PhaseLoading}
}

// Apply folds f into the view. Empty frames are ignored.
func (v *View) Apply(f Frame) {
	if f.Empty() {
		return
	}
	if f.Reset {
		*v = NewView()
	}
	v.Phase = f.Phase
	v.Row = f.Row
	v.RowState = f.RowState
	for _, c := range f.Cells {
		if c.Row < 0 || c.Row >= game.MaxRows || c.Col < 0 || c.Col >= game.WordLength {
			continue
		}
		v.Board[c.Row][c.Col] = Cell{Letter: c.Letter, Mark: c.Mark}
	}
	for _, k := range f.Keys {
		if len(k.Letter) == 1 {
			i := k.Letter[0] - 'a'
			if i < 26 {
				v.Keyboard[i] = k.Mark
			}
		}
	}
	if f.Banner != nil {
		b := *f.Banner
		v.Banner = &b
	}
}

// RowWord returns the letters shown on row r.
func (v View) RowWord(r int) string {
	if r < 0 || r >= game.MaxRows {
		return ""
	}
	var sb strings.Builder
	for _, c := range v.Board[r] {
		sb.WriteString(c.Letter)
	}
	return sb.String()
}
