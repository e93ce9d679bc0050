// assets/embed.go
//
// Embedded word lists used when no list files are configured.
//   - answers.txt: words that can be chosen as the secret.
//   - allowed.txt: extra words accepted as guesses.
//
// Both files hold one word per line; blank lines and lines starting with
// "#" are skipped. Validation of the words themselves is left to the
// words package, which applies the same rules to external files.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ReadLines returns the non-comment, non-blank lines of r, lowercased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readFile(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// AnswersList returns the embedded answer words.
func AnswersList() ([]string, error) {
	return readFile("answers.txt")
}

// AllowedList returns the embedded extra guess words.
func AllowedList() ([]string, error) {
	return readFile("allowed.txt")
}
