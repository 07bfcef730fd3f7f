//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// spinnerInterval is the frame delay of the progress spinner.
const spinnerInterval = 100 * time.Millisecond

// Progress shows a spinner while a blocking step runs.
// It is silent unless its writer is a terminal so redirected output stays clean.
type Progress struct {
	loader *spinner.Spinner
}

// NewProgress returns a Progress writing to w when w is a terminal.
func NewProgress(w io.Writer) *Progress {
	if !IsTerminal(w) {
		return &Progress{}
	}

	loader := spinner.New(spinner.CharSets[11], spinnerInterval, spinner.WithWriter(w))
	loader.Color("yellow") //nolint:errcheck

	return &Progress{loader: loader}
}

// Start shows the spinner with message next to it.
func (p *Progress) Start(message string) {
	if p == nil || p.loader == nil {
		return
	}

	p.loader.Suffix = " " + message
	p.loader.Start()
}

// Stop hides the spinner.
func (p *Progress) Stop() {
	if p == nil || p.loader == nil {
		return
	}

	p.loader.Stop()
}

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
