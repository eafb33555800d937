// Package editor invokes the external editor a review session hands its
// findings to. The scan core's responsibility ends at writing the findings
// file; this package owns spawning, waiting, and exit-code interpretation.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrQuit reports that the editor exited nonzero, which is the user's signal
// to stop processing the remaining sources.
var ErrQuit = errors.New("editor requested stop")

// Editor runs an external editor command on a findings file and the source
// it was collected from.
type Editor struct {
	command []string
}

// New splits command into the program and its leading arguments. An empty
// command is a configuration error.
func New(command string) (*Editor, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}
	return &Editor{command: fields}, nil
}

// String returns the configured command line.
func (e *Editor) String() string {
	return strings.Join(e.command, " ")
}

// Review runs the editor on (findings, source) with the terminal attached
// and waits for it. A nonzero exit returns ErrQuit; failure to run the
// editor at all is fatal to the caller.
func (e *Editor) Review(ctx context.Context, findings, source string) error {
	args := append(append([]string{}, e.command[1:]...), findings, source)
	cmd := exec.CommandContext(ctx, e.command[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrQuit
	}
	if err != nil {
		return fmt.Errorf("cannot execute %s: %w", e.command[0], err)
	}
	return nil
}
