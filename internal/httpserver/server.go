// internal/httpserver/server.go
//
// HTTP server hosting game sessions for browser renderers.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: create, snapshot, key input, delete.
//   - Websocket stream of frames (routes_ws.go).
//
// Notes:
//   - Each hosted session is an independent session.Runner; the server only
//     relays keys in and frames out. Nothing is persisted.
//   - Runners outlive the request that created them and stop on DELETE,
//     idle expiry (Options.SessionTTL), or Close.
//   - Any key, view or stream access counts as activity for expiry.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-session/internal/session"
	"github.com/robalobadob/wordle/apps/go-session/internal/store"
	"github.com/robalobadob/wordle/apps/go-session/internal/words"
)

// Options tunes a Server.
type Options struct {
	// ClientOrigin is the single browser origin allowed by CORS and the
	// websocket handshake.
	ClientOrigin string

	// SessionTTL drops sessions idle for longer than this. Zero keeps them
	// until DELETE.
	SessionTTL time.Duration

	// MaxSessions caps concurrently hosted sessions. Zero is unlimited.
	MaxSessions int
}

// Server bundles router, session registry and the word collaborators shared
// by all sessions.
type Server struct {
	r     *chi.Mux
	store store.Store
	words session.WordSource
	dict  session.Validator
	opts  Options
	now   func() time.Time

	base   context.Context // parent of every runner
	cancel context.CancelFunc
}

// New constructs a Server, installs middleware, and registers routes. With a
// SessionTTL it also starts the expiry sweep, which ends on Close.
func New(st store.Store, ws session.WordSource, dict session.Validator, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), store: st, words: ws, dict: dict, opts: opts, now: time.Now}
	s.base, s.cancel = context.WithCancel(context.Background())
	if opts.SessionTTL > 0 {
		go s.janitor(sweepInterval(opts.SessionTTL))
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// --- diagnostics ---
	api := s.r.With(chimw.Timeout(10*time.Second), jsonContentType)
	api.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-session","endpoints":["/health","POST /sessions","GET /sessions/{id}","POST /sessions/{id}/keys","DELETE /sessions/{id}","GET /sessions/{id}/ws"]}`))
	})
	api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	// Debug: local word list counts (zero when the remote source is used)
	api.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g, "sessions": s.store.Len()})
	})

	// --- sessions ---
	s.r.Route("/sessions", func(r chi.Router) {
		r.With(chimw.Timeout(10*time.Second), jsonContentType).Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			// Websocket streams are long-lived; no handler timeout.
			r.Get("/ws", s.handleStream)

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
				r.Use(jsonContentType)                 // default JSON responses
				r.Get("/", s.handleView)
				r.Post("/keys", s.handleKey)
				r.Delete("/", s.handleDelete)
			})
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Close stops every hosted session and the expiry sweep.
func (s *Server) Close() { s.cancel() }

// sweepInterval checks a few times per TTL, at most once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	if d := ttl / 4; d < time.Minute {
		return d
	}
	return time.Minute
}

// janitor expires idle sessions until Close.
func (s *Server) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.base.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

// Sweep drops sessions idle for longer than SessionTTL and returns how many
// were removed.
func (s *Server) Sweep() int {
	if s.opts.SessionTTL <= 0 {
		return 0
	}
	ids := s.store.Sweep(s.base, s.now().Add(-s.opts.SessionTTL))
	for _, id := range ids {
		log.Info().Str("session", id).Msg("session expired")
	}
	return len(ids)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError sends {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ----------------------------- sessions -------------------------------------

type newSessionRes struct {
	SessionID string `json:"sessionId"`
}

// handleNewSession starts a runner whose frames feed a session.Feed.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if s.opts.MaxSessions > 0 && s.store.Len() >= s.opts.MaxSessions {
		writeError(w, http.StatusServiceUnavailable, "too_many_sessions")
		return
	}
	feed := session.NewFeed()
	runner := session.NewRunner(s.words, s.dict, feed)
	ctx, stop := context.WithCancel(s.base)
	hs := &store.Session{
		ID:        uuid.NewString(),
		Runner:    runner,
		Feed:      feed,
		Stop:      stop,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(r.Context(), hs); err != nil {
		stop()
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("session", hs.ID).Msg("runner exited")
		}
	}()
	log.Info().Str("session", hs.ID).Msg("session started")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: hs.ID})
}

// lookup resolves {id} and marks it active, or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	hs, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	hs.Touch(s.now())
	return hs, true
}

// handleView returns the accumulated view of a session.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	hs, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(hs.Feed.View())
}

type keyReq struct {
	Key string `json:"key"`
}
type keyRes struct {
	Queued bool `json:"queued"`
}

// handleKey forwards one key press. The response only says the key was
// queued; its effect shows up in the view or the stream.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	hs, ok := s.lookup(w, r)
	if !ok {
		return
	}
	a, ok := session.ParseKey(req.Key)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_key")
		return
	}
	if err := hs.Runner.Dispatch(a); err != nil {
		writeError(w, http.StatusGone, "session_stopped")
		return
	}
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(keyRes{Queued: true})
}

// handleDelete stops a session and forgets it.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
