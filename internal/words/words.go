// internal/words/words.go
//
// Provides local word list management.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply utility functions like RandomAnswer, IsAllowed, IsAnswer, and Stats.
//
// Word Lists:
//   - "answers": candidate secrets (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Initialization behavior (Init):
//   1. If WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE are both set,
//      load answers from the first and allowed guesses from the second.
//   2. If only WORDS_ALLOWED_FILE is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If neither is set,
//      fall back to the lists embedded in the assets package.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); anything else is dropped.
//   • Lists are normalized to lowercase and de-duplicated.
//   • Initialization is run once (sync.Once).

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-session/assets"
	"github.com/robalobadob/wordle/apps/go-session/internal/game"
)

// Files names optional list files; empty fields fall back as described above.
type Files struct {
	Answers string
	Allowed string
}

// FilesFromEnv reads WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE.
func FilesFromEnv() Files {
	return Files{
		Answers: os.Getenv("WORDS_ANSWERS_FILE"),
		Allowed: os.Getenv("WORDS_ALLOWED_FILE"),
	}
}

var (
	initOnce   sync.Once
	answers    []string            // candidate secrets
	allowedSet map[string]struct{} // answers ∪ guesses
	answersSet map[string]struct{} // answers only
	initialErr error
)

// Init loads word lists exactly once. Later calls return the first result
// whatever files they name.
// Returns an error if the answers list ends up empty.
func Init(files Files) error {
	initOnce.Do(func() {
		ansList, allowList, err := load(files)
		if err != nil {
			initialErr = err
			return
		}

		answers = ansList
		answersSet = toSet(ansList)

		// Ensure all answers are also marked as allowed
		allowedSet = toSet(ansList)
		for _, w := range allowList {
			allowedSet[w] = struct{}{}
		}

		if len(answers) == 0 {
			initialErr = errors.New("words: answers list is empty")
			return
		}
		log.Debug().Int("answers", len(answers)).Int("allowed", len(allowedSet)).Msg("word lists loaded")
	})
	return initialErr
}

func load(files Files) (ansList, allowList []string, err error) {
	switch {
	// Case 1: both lists provided
	case files.Answers != "" && files.Allowed != "":
		if ansList, err = readWordFile(files.Answers); err != nil {
			return nil, nil, err
		}
		if allowList, err = readWordFile(files.Allowed); err != nil {
			return nil, nil, err
		}

	// Case 2: only allowed file provided → use for both
	case files.Allowed != "":
		if allowList, err = readWordFile(files.Allowed); err != nil {
			return nil, nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, nil, err
		}
		ansList = clean(raw)
		if raw, err = assets.AllowedList(); err != nil {
			return nil, nil, err
		}
		allowList = clean(raw)
	}
	return ansList, allowList, nil
}

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	raw, err := assets.ReadLines(f)
	if err != nil {
		return nil, err
	}
	return clean(raw), nil
}

// clean keeps playable words and drops duplicates, preserving order.
func clean(list []string) []string {
	return lo.Uniq(lo.Filter(list, func(w string, _ int) bool {
		return game.ValidWord(w)
	}))
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// RandomAnswer returns a cryptographically random answer from the answers list.
// If answers are not loaded yet or empty, falls back to "crane".
func RandomAnswer() string {
	if len(answers) == 0 {
		return "crane"
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	if err != nil {
		return answers[0]
	}
	return answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func IsAllowed(w string) bool {
	_, ok := allowedSet[game.Normalize(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	_, ok := answersSet[game.Normalize(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount int, allowedCount int) {
	return len(answers), len(allowedSet)
}
