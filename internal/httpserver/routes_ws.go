// internal/httpserver/routes_ws.go
//
// Websocket stream for a hosted session.
//
//   GET /sessions/{id}/ws
//     → {"type":"view","view":{...}}     once, on connect
//     → {"type":"frame","frame":{...}}   for every later frame
//     ← {"key":"a"} / {"key":"Enter"}    key presses, same names as /keys
//
// A client that falls behind loses frames; it can reconnect (or GET the
// session) to resync from the full view. Keys and delivered frames keep the
// session from expiring.

package httpserver

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-session/internal/session"
)

type streamMsg struct {
	Type  string         `json:"type"`
	View  *session.View  `json:"view,omitempty"`
	Frame *session.Frame `json:"frame,omitempty"`
}

type streamIn struct {
	Key string `json:"key"`
}

// checkOrigin accepts non-browser clients and the configured origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	o := r.Header.Get("Origin")
	return o == "" || o == s.opts.ClientOrigin
}

// handleStream upgrades the connection and relays frames and keys until
// either side goes away or the session stops.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	hs, ok := s.lookup(w, r)
	if !ok {
		return
	}
	up := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		log.Debug().Err(err).Str("session", hs.ID).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	view, frames := hs.Feed.Subscribe()
	defer hs.Feed.Unsubscribe(frames)
	if err := conn.WriteJSON(streamMsg{Type: "view", View: &view}); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			var in streamIn
			if err := conn.ReadJSON(&in); err != nil {
				log.Debug().Err(err).Str("session", hs.ID).Msg("ws closed")
				return
			}
			hs.Touch(s.now())
			a, ok := session.ParseKey(in.Key)
			if !ok {
				continue
			}
			if err := hs.Runner.Dispatch(a); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return
			}
			if err := conn.WriteJSON(streamMsg{Type: "frame", Frame: &f}); err != nil {
				return
			}
			hs.Touch(s.now())
		case <-hs.Runner.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session stopped"))
			return
		case <-ctx.Done():
			return
		}
	}
}
