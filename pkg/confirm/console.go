package confirm

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/yuma/pkg/errors"
)

// maxListed is how many items are printed before collapsing into a count
const maxListed = 20

// Console asks on a line-oriented terminal
type Console struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewConsole returns a console confirmer on stdin and stdout
func NewConsole() *Console {
	return &Console{In: os.Stdin, Out: os.Stdout}
}

func (c *Console) Confirm(message string, items []string) (bool, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}

	pterm.Fprintln(c.Out)
	pterm.Fprintln(c.Out, pterm.Bold.Sprint(message))
	for i, item := range items {
		if i == maxListed {
			pterm.Fprintln(c.Out, pterm.FgGray.Sprintf("  └── and %d more", len(items)-maxListed))
			break
		}
		pterm.Fprintln(c.Out, "  └──", pterm.FgCyan.Sprint(item))
	}
	pterm.Fprint(c.Out, "Continue? [y/N]: ")

	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return false, errors.Wrap(err, errors.ErrConfirm, "failed to read user input")
		}
		if line == "" {
			pterm.Fprintln(c.Out)
			log.Debug().Str("message", message).Msg("No answer on input, declining")
			return false, nil
		}
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
