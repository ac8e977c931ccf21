// pkg/manifest/manifest_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: fake backend adapter, recording runner, t.TempDir
// PURPOSE: Test manifest decoding and its translation into session calls

package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/confirm"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/manifest"
	"github.com/arthur-debert/yuma/pkg/platform"
	"github.com/arthur-debert/yuma/pkg/session"
)

const tomlManifest = `
services = ["sshd"]

[[packages]]
names = ["git", "neovim"]
os = ["linux"]

[[packages]]
names = ["mas"]
os = ["macos"]
backend = "brew"

[[hooks]]
name = "greet"
run = "echo hello"
`

const yamlManifest = `
services: [sshd]
packages:
  - names: [git, neovim]
    os: [linux]
  - names: [mas]
    os: [macos]
    backend: brew
hooks:
  - name: greet
    run: echo hello
`

type recordingRunner struct {
	calls []string
}

func (r *recordingRunner) Output(name string, args ...string) ([]byte, error) {
	return nil, nil
}

func (r *recordingRunner) Run(name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return nil
}

func TestParse_Formats(t *testing.T) {
	for name, doc := range map[string]string{"m.toml": tomlManifest, "m.yaml": yamlManifest} {
		t.Run(name, func(t *testing.T) {
			m, err := manifest.Parse([]byte(doc), name)
			require.NoError(t, err)

			require.Len(t, m.Packages, 2)
			assert.Equal(t, []string{"git", "neovim"}, m.Packages[0].Names)
			assert.Equal(t, []string{"linux"}, m.Packages[0].OS)
			assert.Equal(t, "brew", m.Packages[1].Backend)
			assert.Equal(t, []manifest.Hook{{Name: "greet", Run: "echo hello"}}, m.Hooks)
			assert.Equal(t, []string{"sshd"}, m.Services)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yuma.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlManifest), 0644))

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Packages, 2)

	_, err = manifest.Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestParse_Invalid(t *testing.T) {
	_, err := manifest.Parse([]byte("[[packages]\nnames = "), "m.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = manifest.Parse([]byte("[[hooks]]\nname = \"empty\"\n"), "m.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestPackage_UnknownBackend(t *testing.T) {
	_, err := manifest.Package{Names: []string{"x"}, Backend: "apt"}.Builder()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestApply(t *testing.T) {
	m, err := manifest.Parse([]byte(tomlManifest), "m.toml")
	require.NoError(t, err)

	fake := backend.NewFake()
	runner := &recordingRunner{}
	s := session.New(
		session.WithFacts(platform.Static{Host: "box", Architecture: "x86_64", System: "linux"}),
		session.WithDefaultBackend(backend.Bind(backend.KindFake, fake)),
		session.WithConfirmer(confirm.Fixed(true)),
		session.WithSkipCache(),
	)

	require.NoError(t, m.Apply(s, runner))
	require.NoError(t, s.Update())

	assert.Equal(t, [][]string{{"git", "neovim"}}, fake.Installs())
	assert.Equal(t, []string{"sh -c echo hello"}, runner.calls)
	assert.Len(t, s.State().Services.Enabled, 1)
	require.NoError(t, s.Close())
}
