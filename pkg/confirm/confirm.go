// Package confirm asks the user yes/no questions about package sets.
//
// Console prints the items with pterm and reads a y/N answer from a
// reader. Form shows a huh confirm field and needs a terminal. Fixed and
// Recorder answer without asking, for scripted runs and tests.
package confirm

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
)

var log = logging.GetLogger("confirm")

// Confirmer asks whether to proceed with an operation over items
type Confirmer interface {
	Confirm(message string, items []string) (bool, error)
}

// Modes accepted by Select
const (
	ModeAuto    = "auto"
	ModeConsole = "console"
	ModeForm    = "form"
)

// Select picks a confirmer for mode. assumeYes short-circuits every prompt.
// In auto mode the huh form is used when stdin and stdout are terminals.
func Select(mode string, assumeYes bool) (Confirmer, error) {
	if assumeYes {
		return Fixed(true), nil
	}

	switch mode {
	case ModeConsole:
		return NewConsole(), nil
	case ModeForm:
		return NewForm(), nil
	case ModeAuto, "":
		return Auto(), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown confirm mode: %s", mode).
			WithDetail("mode", mode)
	}
}

// Auto returns the form confirmer on a terminal and the console one otherwise
func Auto() Confirmer {
	if IsInteractive() {
		return NewForm()
	}
	return NewConsole()
}

// IsInteractive reports whether stdin and stdout are both terminals
func IsInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Fixed answers every question the same way
type Fixed bool

func (f Fixed) Confirm(message string, items []string) (bool, error) {
	log.Debug().Str("message", message).Strs("items", items).Bool("answer", bool(f)).Msg("Answering without prompt")
	return bool(f), nil
}

// Prompt is one question a Recorder was asked
type Prompt struct {
	Message string
	Items   []string
}

// Recorder answers from a script and remembers every prompt. Once the
// script runs out it answers Default.
type Recorder struct {
	Answers []bool
	Default bool
	Err     error

	mu      sync.Mutex
	prompts []Prompt
}

func (r *Recorder) Confirm(message string, items []string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prompts = append(r.prompts, Prompt{Message: message, Items: append([]string(nil), items...)})
	if r.Err != nil {
		return false, r.Err
	}
	if len(r.Answers) == 0 {
		return r.Default, nil
	}
	answer := r.Answers[0]
	r.Answers = r.Answers[1:]
	return answer, nil
}

// Prompts returns every question asked so far
func (r *Recorder) Prompts() []Prompt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Prompt(nil), r.prompts...)
}
