package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/adminctl/internal/core/ui"
)

// confirmPrompt asks on the terminal, or returns the fixed answer when the
// user passed --yes.
func confirmPrompt(yes bool) ui.ConfirmationPrompt {
	if yes {
		return ui.Answer(true)
	}
	return ui.ConfirmFunc(huhConfirm)
}

func huhConfirm(ctx context.Context, message, title string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(message).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// promptPath asks for a bundle file path.
func promptPath(ctx context.Context, title string) (string, error) {
	var path string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder("/path/to/module.jar").
			Value(&path).
			Validate(func(s string) error {
				info, err := os.Stat(s)
				if err != nil {
					return err
				}
				if info.IsDir() {
					return fmt.Errorf("%s is a directory", s)
				}
				return nil
			}),
	))

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return path, nil
}
