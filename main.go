// main.go
//
// Entry point.
//
//	wordle         play in the terminal
//	wordle serve   host sessions over HTTP + websocket
//
// Both modes read the same configuration (internal/config) and build the
// same word ports: the remote word service, or the embedded lists when
// WORD_SOURCE=local.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-session/internal/config"
	"github.com/robalobadob/wordle/apps/go-session/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-session/internal/session"
	"github.com/robalobadob/wordle/apps/go-session/internal/store"
	"github.com/robalobadob/wordle/apps/go-session/internal/tui"
	"github.com/robalobadob/wordle/apps/go-session/internal/words"
	"github.com/robalobadob/wordle/apps/go-session/internal/wordsapi"
)

func main() {
	cfg := config.Load()
	serve := len(os.Args) > 1 && os.Args[1] == "serve"

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	src, dict, err := ports(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordle:", err)
		os.Exit(1)
	}

	if serve {
		mem := store.NewMemoryStore()
		srv := httpserver.New(mem, src, dict, httpserver.Options{
			ClientOrigin: cfg.ClientOrigin,
			SessionTTL:   cfg.SessionTTL,
			MaxSessions:  cfg.SessionMax,
		})
		defer srv.Close()
		log.Info().Str("port", cfg.Port).Str("source", cfg.Source).Dur("session_ttl", cfg.SessionTTL).Msg("starting session server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
		return
	}

	closeLog, err := terminalLogging(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordle:", err)
		os.Exit(1)
	}
	defer closeLog()
	if err := play(src, dict); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "wordle:", err)
		closeLog()
		os.Exit(1)
	}
}

// ports builds the word source and dictionary for cfg.Source.
func ports(cfg config.Config) (session.WordSource, session.Validator, error) {
	if cfg.Source == config.SourceLocal {
		if err := words.Init(cfg.Files); err != nil {
			return nil, nil, fmt.Errorf("load word lists: %w", err)
		}
		l := words.Local{Mode: cfg.Mode, Salt: cfg.DailySalt}
		return l, l, nil
	}
	c := wordsapi.New(cfg.WordURL, cfg.ValidateURL, cfg.Timeout)
	return c, c, nil
}

// terminalLogging keeps log output off the game screen: to path when set,
// otherwise nowhere.
func terminalLogging(path string) (func(), error) {
	if path == "" {
		log.Logger = zerolog.Nop()
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

// play runs one terminal session until the player quits.
func play(src session.WordSource, dict session.Validator) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ui := tui.New(screen)
	runner := session.NewRunner(src, dict, ui)
	go func() { _ = runner.Run(ctx) }()

	err = ui.Loop(ctx, runner.Dispatch)
	cancel()
	<-runner.Done()
	log.Info().Msg("terminal session ended")
	return err
}
