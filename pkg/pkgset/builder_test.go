// pkg/pkgset/builder_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: platform.Static, fake backend
// PURPOSE: Test declaration filtering, merging and group equality

package pkgset_test

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/pkgset"
	"github.com/arthur-debert/yuma/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linuxEnv() pkgset.Env {
	return pkgset.Env{
		Facts:   platform.Static{Host: "workstation", Architecture: "amd64", System: "linux"},
		Default: backend.Fake(),
	}
}

func TestBuild_PassThrough(t *testing.T) {
	g, err := pkgset.New("a", "b", "c").Build(linuxEnv())
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, []string{"a", "b", "c"}, g.Names())
	assert.True(t, g.Backend().Equal(backend.Fake()))
}

func TestBuild_Filters(t *testing.T) {
	tests := []struct {
		name     string
		builder  *pkgset.Builder
		expected bool
	}{
		{"host allowed", pkgset.New("x").OnHost("workstation"), true},
		{"host rejected", pkgset.New("x").OnHosts("laptop", "server"), false},
		{"host rejected despite matching arch and os", pkgset.New("x").OnHost("laptop").OnArch("x86_64").OnOS("linux"), false},
		{"arch canonical", pkgset.New("x").OnArch("x86_64"), true},
		{"arch go alias", pkgset.New("x").OnArch("amd64"), true},
		{"arch rejected", pkgset.New("x").OnArches("aarch64"), false},
		{"os allowed", pkgset.New("x").OnOS("linux"), true},
		{"os rejected", pkgset.New("x").OnOSes("macos", "windows"), false},
		{"empty host list matches nothing", pkgset.New("x").OnHosts(), false},
		{"duplicate entries tolerated", pkgset.New("x").OnOS("linux").OnOS("linux"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.builder.Build(linuxEnv())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g != nil)
		})
	}
}

func TestBuild_HostnameFailureSuppresses(t *testing.T) {
	env := pkgset.Env{
		Facts:   platform.Static{HostErr: stderrors.New("uname failed"), Architecture: "amd64", System: "linux"},
		Default: backend.Fake(),
	}

	g, err := pkgset.New("x").OnHost("workstation").Build(env)
	require.NoError(t, err)
	assert.Nil(t, g)

	// without a host filter the hostname is never consulted
	g, err = pkgset.New("x").Build(env)
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestBuild_BackendSelection(t *testing.T) {
	g, err := pkgset.New("x").WithBackend(backend.Brew()).Build(linuxEnv())
	require.NoError(t, err)
	assert.True(t, g.Backend().Equal(backend.Brew()))

	guessed := pkgset.Env{Facts: platform.Static{Architecture: "arm64", System: "macos"}}
	g, err = pkgset.New("x").Build(guessed)
	require.NoError(t, err)
	assert.True(t, g.Backend().Equal(backend.Brew()))
}

func TestMerge_NamesAndFilters(t *testing.T) {
	a := pkgset.New("a", "b").OnOS("linux")
	b := pkgset.New("c").OnArch("x86_64")

	g, err := pkgset.Merge(a, b).Build(linuxEnv())
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, g.Names())

	// the merged host filter from one side constrains the whole batch
	g, err = pkgset.Merge(pkgset.New("a"), pkgset.New("b").OnHost("laptop")).Build(linuxEnv())
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestMerge_Commutative(t *testing.T) {
	ab, err := pkgset.Merge(pkgset.New("a"), pkgset.New("b")).Build(linuxEnv())
	require.NoError(t, err)
	ba, err := pkgset.Merge(pkgset.New("b"), pkgset.New("a")).Build(linuxEnv())
	require.NoError(t, err)

	assert.True(t, ab.Equal(ba))
}

func TestMerge_Backend(t *testing.T) {
	g, err := pkgset.Merge(pkgset.New("a"), pkgset.New("b").WithBackend(backend.Brew())).Build(linuxEnv())
	require.NoError(t, err)
	assert.True(t, g.Backend().Equal(backend.Brew()))

	g, err = pkgset.Merge(pkgset.New("a").WithBackend(backend.Paru()), pkgset.New("b")).Build(linuxEnv())
	require.NoError(t, err)
	assert.True(t, g.Backend().Equal(backend.Paru()))

	_, err = pkgset.Merge(
		pkgset.New("a").WithBackend(backend.Paru()),
		pkgset.New("b").WithBackend(backend.Brew()),
	).Build(linuxEnv())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigConflict))
}

func TestDeclarations(t *testing.T) {
	decl := pkgset.Declarations{
		pkgset.Name("a"),
		pkgset.Names{"b", "c"},
		pkgset.New("d").OnOS("linux"),
		nil,
	}

	g, err := decl.Declare().Build(linuxEnv())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Names())
}

func TestGroup_Dedup(t *testing.T) {
	g := pkgset.NewGroup(backend.Fake(), "a", "b", "a")
	g.Add("b", "c", "")

	assert.Equal(t, []string{"a", "b", "c"}, g.Names())
}

func TestGroup_EqualIgnoresFilterOrder(t *testing.T) {
	one, err := pkgset.New("x", "y").OnOS("linux").OnArches("x86_64", "aarch64").Build(linuxEnv())
	require.NoError(t, err)
	two, err := pkgset.New("y", "x").OnArches("aarch64", "x86_64").OnOS("linux").Build(linuxEnv())
	require.NoError(t, err)

	assert.True(t, one.Equal(two))

	data, err := json.Marshal(one)
	require.NoError(t, err)

	var decoded pkgset.Group
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(two))

	three, err := pkgset.New("x", "y").OnOS("linux").Build(linuxEnv())
	require.NoError(t, err)
	assert.False(t, one.Equal(three))
}

func TestGroup_Resolve(t *testing.T) {
	fake := backend.NewFake()
	fake.Names = map[backend.GenericName]string{"editor": "neovim"}

	env := linuxEnv()
	env.Default = backend.Bind(backend.KindFake, fake)

	g, err := pkgset.Merge(pkgset.New("git"), pkgset.Generic("editor", "pager")).Build(env)
	require.NoError(t, err)
	assert.Equal(t, []backend.GenericName{"editor", "pager"}, g.Generics())

	require.NoError(t, g.Resolve())
	assert.Equal(t, []string{"git", "neovim", "pager"}, g.Names())
	assert.Empty(t, g.Generics())
}
