// internal/config/config.go
//
// Runtime configuration from the environment.
// A `.env` file in the working directory is loaded first (development);
// real environment variables take precedence over it.
//
// Variables:
//   LOG_LEVEL           zerolog level (default info)
//   LOG_FILE            log destination for the terminal game (default: discard)
//   PORT                session server port (default 5175)
//   CLIENT_ORIGIN       CORS origin for the session server (default http://localhost:5173)
//   SESSION_TTL         idle time before a hosted session is dropped; 0 keeps them (default 30m)
//   SESSION_MAX         cap on hosted sessions; 0 is unlimited (default 1000)
//   WORD_SOURCE         remote | local (default remote)
//   WORDS_WORD_URL      word-of-the-day endpoint
//   WORDS_VALIDATE_URL  dictionary endpoint
//   WORDS_TIMEOUT       client timeout, Go duration; 0 disables (default 0)
//   WORD_MODE           random | daily, local source only (default random)
//   DAILY_SALT          daily mode HMAC key (default daily.DefaultSalt)
//   WORDS_ANSWERS_FILE  / WORDS_ALLOWED_FILE  local list files

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-session/internal/daily"
	"github.com/robalobadob/wordle/apps/go-session/internal/words"
	"github.com/robalobadob/wordle/apps/go-session/internal/wordsapi"
)

// Source names accepted by WORD_SOURCE.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel     string
	LogFile      string
	Port         string
	ClientOrigin string
	SessionTTL   time.Duration
	SessionMax   int

	Source      string
	WordURL     string
	ValidateURL string
	Timeout     time.Duration

	Mode      words.Mode
	DailySalt string
	Files     words.Files
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	c := Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      os.Getenv("LOG_FILE"),
		Port:         getEnv("PORT", "5175"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionTTL:   30 * time.Minute,
		SessionMax:   1000,
		Source:       strings.ToLower(getEnv("WORD_SOURCE", SourceRemote)),
		WordURL:      getEnv("WORDS_WORD_URL", wordsapi.DefaultWordURL),
		ValidateURL:  getEnv("WORDS_VALIDATE_URL", wordsapi.DefaultValidateURL),
		Mode:         words.Mode(strings.ToLower(getEnv("WORD_MODE", string(words.ModeRandom)))),
		DailySalt:    getEnv("DAILY_SALT", daily.DefaultSalt),
		Files:        words.FilesFromEnv(),
	}
	if v := os.Getenv("WORDS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Warn().Err(err).Str("WORDS_TIMEOUT", v).Msg("ignoring bad timeout")
		} else {
			c.Timeout = d
		}
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			log.Warn().Str("SESSION_TTL", v).Msg("ignoring bad session ttl")
		} else {
			c.SessionTTL = d
		}
	}
	if v := os.Getenv("SESSION_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Warn().Str("SESSION_MAX", v).Msg("ignoring bad session cap")
		} else {
			c.SessionMax = n
		}
	}
	if c.Source != SourceRemote && c.Source != SourceLocal {
		log.Warn().Str("WORD_SOURCE", c.Source).Msg("unknown word source, using remote")
		c.Source = SourceRemote
	}
	if c.Mode != words.ModeRandom && c.Mode != words.ModeDaily {
		log.Warn().Str("WORD_MODE", string(c.Mode)).Msg("unknown word mode, using random")
		c.Mode = words.ModeRandom
	}
	return c
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
