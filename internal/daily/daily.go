// internal/daily/daily.go
//
// Word-of-the-day selection for words.ModeDaily. Every session started on
// the same UTC date gets the same secret; the salt (DAILY_SALT) keeps the
// sequence from being read off the embedded answer list.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DefaultSalt is the development salt used when DAILY_SALT is unset.
// Deployments that care about spoilers set their own.
const DefaultSalt = "wordle-session-dev"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex picks the answer-list position for date: the first 8 bytes of
// HMAC-SHA256(salt, DateKey(date)), modulo n. An empty salt means
// DefaultSalt. It returns 0 when n <= 0.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	if salt == "" {
		salt = DefaultSalt
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	v := binary.BigEndian.Uint64(mac.Sum(nil)[:8])
	return int(v % uint64(n))
}
