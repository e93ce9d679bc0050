package session

// Action is an input to Step: a key press from the renderer or the outcome
// of an Effect reported back by the driver.
type Action interface{ action() }

// Start begins a session; it requests the secret.
type Start struct{}

// SecretLoaded reports the word source result.
type SecretLoaded struct{ Word string }

// SecretFailed reports that the word source could not be reached or parsed.
type SecretFailed struct{ Err error }

// Letter inserts Key into the buffer if it is an ASCII letter.
type Letter struct{ Key rune }

// Backspace removes the last buffered letter.
type Backspace struct{}

// Submit sends a full buffer to the dictionary.
type Submit struct{}

// Validated reports the dictionary verdict for Word submitted from Row.
type Validated struct {
	Row   int
	Word  string
	Valid bool
}

// ValidationFailed reports that the dictionary call for Row failed.
type ValidationFailed struct {
	Row int
	Err error
}

// Restart discards a finished session and loads a new one.
type Restart struct{}

func (Start) action()            {}
func (SecretLoaded) action()     {}
func (SecretFailed) action()     {}
func (Letter) action()           {}
func (Backspace) action()        {}
func (Submit) action()           {}
func (Validated) action()        {}
func (ValidationFailed) action() {}
func (Restart) action()          {}

// Effect is a request from Step for the driver to perform I/O. The driver
// answers with exactly one Action.
type Effect interface{ effect() }

// FetchSecret asks for the secret word; answered by SecretLoaded or SecretFailed.
type FetchSecret struct{}

// ValidateWord asks whether Word is in the dictionary; answered by
// Validated or ValidationFailed.
type ValidateWord struct {
	Row  int
	Word string
}

func (FetchSecret) effect()  {}
func (ValidateWord) effect() {}
