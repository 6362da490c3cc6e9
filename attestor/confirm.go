package attestor

import (
	"fmt"
	"io"
	"os"
)

// StdinConfirmer blocks on a single byte from In. 'Y' or 'y' means yes.
// There is no timeout: the process waits indefinitely for a keypress.
type StdinConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewStdinConfirmer returns a confirmer reading from os.Stdin.
func NewStdinConfirmer() *StdinConfirmer {
	return &StdinConfirmer{In: os.Stdin, Out: os.Stdout}
}

// Confirm prints the prompt and reads one byte.
func (c *StdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprint(c.Out, prompt)
	var buf [1]byte
	if _, err := io.ReadFull(c.In, buf[:]); err != nil {
		return false
	}
	return buf[0] == 'Y' || buf[0] == 'y'
}

// AutoConfirmer answers yes to everything, for unattended runs with
// --skip-prompt.
type AutoConfirmer struct{}

// Confirm always returns true.
func (AutoConfirmer) Confirm(string) bool {
	return true
}
