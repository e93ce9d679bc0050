// internal/wordsapi/client.go
//
// HTTP client for the remote word service.
//   - GET  <word URL>      → {"word": "crane", ...}
//   - POST <validate URL>  ← {"word": "crane"}  → {"validWord": true, ...}
//
// Client satisfies session.WordSource and session.Validator. Every failure
// (transport, status, malformed payload) is returned as an error; the
// session decides what that means for the game.

package wordsapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/robalobadob/wordle/apps/go-session/internal/game"
)

// Defaults used by the original browser game.
const (
	DefaultWordURL     = "https://words.dev-apis.com/word-of-the-day?random=1"
	DefaultValidateURL = "https://words.dev-apis.com/validate-word"
)

// ErrMalformed is wrapped by errors for responses that are not the expected
// JSON shape.
var ErrMalformed = errors.New("wordsapi: malformed response")

// maxBody bounds how much of a response is read.
const maxBody = 64 << 10

// Client talks to the word service.
type Client struct {
	http        *http.Client
	wordURL     string
	validateURL string
}

// New constructs a Client. A zero timeout means calls are never timed out
// by the client.
func New(wordURL, validateURL string, timeout time.Duration) *Client {
	if wordURL == "" {
		wordURL = DefaultWordURL
	}
	if validateURL == "" {
		validateURL = DefaultValidateURL
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		wordURL:     wordURL,
		validateURL: validateURL,
	}
}

// Word fetches the secret word. The result is lowercase and exactly
// game.WordLength letters.
func (c *Client) Word(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.wordURL, nil)
	if err != nil {
		return "", err
	}
	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("fetch word: %w", err)
	}
	res := gjson.GetBytes(body, "word")
	if res.Type != gjson.String {
		return "", fmt.Errorf("fetch word: %w: no word field", ErrMalformed)
	}
	w := game.Normalize(res.String())
	if !game.ValidWord(w) {
		return "", fmt.Errorf("fetch word: %w: %q is not a %d-letter word", ErrMalformed, res.String(), game.WordLength)
	}
	return w, nil
}

// Validate asks the service whether word is in its dictionary.
func (c *Client) Validate(ctx context.Context, word string) (bool, error) {
	payload, err := sjson.SetBytes([]byte(`{}`), "word", word)
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.validateURL, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	body, err := c.do(req)
	if err != nil {
		return false, fmt.Errorf("validate %q: %w", word, err)
	}
	res := gjson.GetBytes(body, "validWord")
	if !res.IsBool() {
		return false, fmt.Errorf("validate %q: %w: no validWord field", word, ErrMalformed)
	}
	return res.Bool(), nil
}

// do sends req and returns the body of a 2xx JSON response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	return body, nil
}
