package backend_test

import (
	"strings"
	"sync"
)

// stubResult is the scripted answer to one command line
type stubResult struct {
	out []byte
	err error
}

// stubRunner answers commands from a script and records every call
type stubRunner struct {
	mu      sync.Mutex
	results map[string]stubResult
	calls   []string
}

func newStubRunner() *stubRunner {
	return &stubRunner{results: make(map[string]stubResult)}
}

func (s *stubRunner) on(cmdline string, out string, err error) {
	s.results[cmdline] = stubResult{out: []byte(out), err: err}
}

func (s *stubRunner) record(name string, args []string) stubResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	s.calls = append(s.calls, line)
	return s.results[line]
}

func (s *stubRunner) Output(name string, args ...string) ([]byte, error) {
	r := s.record(name, args)
	return r.out, r.err
}

func (s *stubRunner) Run(name string, args ...string) error {
	return s.record(name, args).err
}
