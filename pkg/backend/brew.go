package backend

// BrewAdapter drives Homebrew
type BrewAdapter struct {
	bin    string
	runner Runner
	index  IndexFunc
}

// NewBrew creates a Homebrew adapter
func NewBrew(bin string, runner Runner, index IndexFunc) *BrewAdapter {
	return &BrewAdapter{bin: bin, runner: runner, index: index}
}

func (b *BrewAdapter) ListInstalled() ([]string, error) {
	out, err := b.runner.Output(b.bin, "list", "-1")
	if err != nil {
		return nil, err
	}
	return parseLines(out, b.bin+" list")
}

func (b *BrewAdapter) ListLeaves() ([]string, error) {
	out, err := b.runner.Output(b.bin, "leaves", "--installed-on-request")
	if err != nil {
		return nil, err
	}
	return parseLines(out, b.bin+" leaves")
}

// Install relies on brew skipping formulae that are already installed
func (b *BrewAdapter) Install(names []string) error {
	if len(names) == 0 {
		return nil
	}
	args := append([]string{"install"}, names...)
	return b.runner.Run(b.bin, args...)
}

// Remove uninstalls names, then drops dependencies nothing needs anymore
func (b *BrewAdapter) Remove(names []string) error {
	if len(names) == 0 {
		return nil
	}
	args := append([]string{"uninstall"}, names...)
	if err := b.runner.Run(b.bin, args...); err != nil {
		return err
	}
	return b.runner.Run(b.bin, "autoremove")
}

func (b *BrewAdapter) ResolveName(name GenericName) (string, error) {
	return resolveFromIndex(b.index, KindBrew, name)
}
