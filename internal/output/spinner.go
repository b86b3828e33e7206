package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stderr, where the spinner and logs go, is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner runs action while a spinner titled title is shown. Without a
// terminal the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	actionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		errCh <- action(actionCtx)
		close(done)
	}()

	spinnerErr := spinner.New().
		Title(title).
		Context(actionCtx).
		Action(func() { <-done }).
		Run()
	if spinnerErr != nil {
		cancel()
		<-done
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return <-errCh
}
