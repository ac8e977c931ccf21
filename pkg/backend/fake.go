package backend

import "sync"

// FakeAdapter performs no I/O. Reads return the scripted lists (empty by
// default) and writes are logged and recorded, always succeeding unless an
// error is scripted.
type FakeAdapter struct {
	mu sync.Mutex

	Installed []string
	Leaves    []string
	Names     map[GenericName]string

	ListErr    error
	InstallErr error
	RemoveErr  error

	installs [][]string
	removes  [][]string
}

// NewFake returns a fake with nothing installed
func NewFake() *FakeAdapter {
	return &FakeAdapter{}
}

func (f *FakeAdapter) ListInstalled() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]string(nil), f.Installed...), nil
}

func (f *FakeAdapter) ListLeaves() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]string(nil), f.Leaves...), nil
}

func (f *FakeAdapter) Install(names []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.Info().Strs("packages", names).Msg("Would have installed")
	if f.InstallErr != nil {
		return f.InstallErr
	}
	f.installs = append(f.installs, append([]string(nil), names...))
	return nil
}

func (f *FakeAdapter) Remove(names []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.Info().Strs("packages", names).Msg("Would have removed")
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.removes = append(f.removes, append([]string(nil), names...))
	return nil
}

// ResolveName uses the scripted mapping, falling back to the generic name
func (f *FakeAdapter) ResolveName(name GenericName) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if specific, ok := f.Names[name]; ok {
		return specific, nil
	}
	return string(name), nil
}

// Installs returns every Install call's names in call order
func (f *FakeAdapter) Installs() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.installs...)
}

// Removes returns every Remove call's names in call order
func (f *FakeAdapter) Removes() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.removes...)
}
