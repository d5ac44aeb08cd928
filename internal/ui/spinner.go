package ui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// WithSpinner shows a spinner titled title while fn runs. Without a
// terminal fn runs directly. Cancelling ctx stops the spinner; fn is
// expected to watch ctx itself.
func WithSpinner(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	if !IsInteractive() {
		return fn(ctx)
	}
	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			actionErr = fn(ctx)
		}).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
