package confirm

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/arthur-debert/yuma/pkg/errors"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// Form asks with a huh confirm field
type Form struct {
	isTerminal func() bool
}

// NewForm returns a form confirmer using the default terminal check
func NewForm() *Form {
	return &Form{isTerminal: IsInteractive}
}

func (f *Form) ensureInteractive() error {
	checker := f.isTerminal
	if checker == nil {
		checker = IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(errors.ErrConfirm, "interactive confirmation requires a terminal")
}

func (f *Form) Confirm(message string, items []string) (bool, error) {
	if err := f.ensureInteractive(); err != nil {
		return false, err
	}

	var answer bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Description(describe(items)).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	)

	if err := runFormFunc(form); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return false, errors.Wrap(err, errors.ErrConfirm, "confirmation aborted")
		}
		return false, errors.Wrap(err, errors.ErrConfirm, "confirmation prompt failed")
	}
	return answer, nil
}

func describe(items []string) string {
	if len(items) <= maxListed {
		return strings.Join(items, "\n")
	}
	return fmt.Sprintf("%s\nand %d more", strings.Join(items[:maxListed], "\n"), len(items)-maxListed)
}
