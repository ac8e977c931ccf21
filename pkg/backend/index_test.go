// pkg/backend/index_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test name index loading from files and shipyard directories

package backend_test

import (
	"testing"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestLoadIndex_Formats(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"json", "/idx/index.json", `{"paru": {"editor": "neovim"}, "brew": {"editor": "nvim"}}`},
		{"toml", "/idx/index.toml", "[paru]\neditor = \"neovim\"\n[brew]\neditor = \"nvim\"\n"},
		{"yaml", "/idx/index.yaml", "paru:\n  editor: neovim\nbrew:\n  editor: nvim\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, tt.path, tt.content)

			idx, err := backend.LoadIndex(fs, tt.path)
			require.NoError(t, err)

			name, ok := idx.Lookup(backend.KindParu, "editor")
			assert.True(t, ok)
			assert.Equal(t, "neovim", name)

			name, ok = idx.Lookup(backend.KindBrew, "editor")
			assert.True(t, ok)
			assert.Equal(t, "nvim", name)

			_, ok = idx.Lookup(backend.KindBrew, "pager")
			assert.False(t, ok)
		})
	}
}

func TestLoadIndex_Shipyard(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/shipyard/paru/editor", `{"name": "neovim"}`)
	writeFile(t, fs, "/shipyard/paru/pager", `{"name": "less"}`)
	writeFile(t, fs, "/shipyard/brew/editor", `{"name": "nvim"}`)
	writeFile(t, fs, "/shipyard/README", "not a backend")

	idx, err := backend.LoadIndex(fs, "/shipyard")
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []backend.GenericName{"editor", "pager"}, idx.Generics(backend.KindParu))

	name, ok := idx.Lookup(backend.KindBrew, "editor")
	assert.True(t, ok)
	assert.Equal(t, "nvim", name)
}

func TestLoadIndex_ShipyardUnknownBackend(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/shipyard/apt/editor", `{"name": "vim"}`)

	_, err := backend.LoadIndex(fs, "/shipyard")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestLoadIndex_Missing(t *testing.T) {
	idx, err := backend.LoadIndex(afero.NewMemMapFs(), "/nowhere/index.json")
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestLoadIndex_Malformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/idx/index.json", `{"paru": [`)

	_, err := backend.LoadIndex(fs, "/idx/index.json")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestResolveName_ThroughSharedIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/idx/index.json", `{"paru": {"editor": "neovim"}}`)
	backend.SetIndexSource(fs, "/idx/index.json")
	t.Cleanup(func() { backend.SetIndexSource(nil, "") })

	paru := backend.NewParu("paru", newStubRunner(), backend.Index)

	name, err := paru.ResolveName("editor")
	require.NoError(t, err)
	assert.Equal(t, "neovim", name)

	_, err = paru.ResolveName("pager")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedPackage))

	brew := backend.NewBrew("brew", newStubRunner(), backend.Index)
	_, err = brew.ResolveName("editor")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedPackage))
}
