package backend

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/yuma/pkg/errors"
)

// NameIndex maps generic package names to backend-specific ones
type NameIndex struct {
	names map[Kind]map[GenericName]string
}

// NewNameIndex returns an empty index
func NewNameIndex() *NameIndex {
	return &NameIndex{names: make(map[Kind]map[GenericName]string)}
}

// Set records the specific name kind uses for generic
func (idx *NameIndex) Set(kind Kind, generic GenericName, specific string) {
	if idx.names[kind] == nil {
		idx.names[kind] = make(map[GenericName]string)
	}
	idx.names[kind][generic] = specific
}

// Lookup returns the specific name for generic under kind
func (idx *NameIndex) Lookup(kind Kind, generic GenericName) (string, bool) {
	specific, ok := idx.names[kind][generic]
	return specific, ok
}

// Generics lists the generic names kind has a mapping for, sorted
func (idx *NameIndex) Generics(kind Kind) []GenericName {
	out := make([]GenericName, 0, len(idx.names[kind]))
	for g := range idx.names[kind] {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len counts mappings across every backend
func (idx *NameIndex) Len() int {
	n := 0
	for _, m := range idx.names {
		n += len(m)
	}
	return n
}

// indexFile is the single-file layout: {backend: {generic: specific}}
type indexFile map[string]map[string]string

// shipment is one file of a shipyard directory
type shipment struct {
	Name string `json:"name"`
}

// LoadIndex reads a name index from path. A directory is read as a shipyard
// (<root>/<backend>/<generic> files holding {"name": ...}); a file is decoded
// by extension. A missing path yields an empty index.
func LoadIndex(fs afero.Fs, path string) (*NameIndex, error) {
	if path == "" {
		return NewNameIndex(), nil
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No name index found")
			return NewNameIndex(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to stat name index %s", path).
			WithDetail("path", path)
	}

	if info.IsDir() {
		return loadShipyard(fs, path)
	}
	return loadIndexFile(fs, path)
}

func loadIndexFile(fs afero.Fs, path string) (*NameIndex, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read name index %s", path).
			WithDetail("path", path)
	}

	var raw indexFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to parse name index %s", path).
			WithDetail("path", path)
	}

	idx := NewNameIndex()
	for backendName, mappings := range raw {
		kind, err := ParseKind(backendName)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "name index %s names an unknown backend", path).
				WithDetail("path", path).
				WithDetail("backend", backendName)
		}
		for generic, specific := range mappings {
			idx.Set(kind, GenericName(generic), specific)
		}
	}

	log.Debug().Str("path", path).Int("mappings", idx.Len()).Msg("Loaded name index")
	return idx, nil
}

func loadShipyard(fs afero.Fs, root string) (*NameIndex, error) {
	dirs, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read shipyard %s", root).
			WithDetail("path", root)
	}

	idx := NewNameIndex()
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		kind, err := ParseKind(dir.Name())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "shipyard directory %s is not a backend", dir.Name()).
				WithDetail("path", filepath.Join(root, dir.Name()))
		}

		dirPath := filepath.Join(root, dir.Name())
		log.Info().Str("backend", kind.String()).Str("path", dirPath).Msg("Registry for backend found")

		files, err := afero.ReadDir(fs, dirPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to read shipyard %s", dirPath).
				WithDetail("path", dirPath)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			filePath := filepath.Join(dirPath, file.Name())
			data, err := afero.ReadFile(fs, filePath)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrIO, "failed to read shipment %s", filePath).
					WithDetail("path", filePath)
			}
			var s shipment
			if err := json.Unmarshal(data, &s); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIO, "failed to parse shipment %s", filePath).
					WithDetail("path", filePath)
			}
			idx.Set(kind, GenericName(file.Name()), s.Name)
		}
	}
	return idx, nil
}

// sharedIndex loads the configured index once per process
type sharedIndex struct {
	mu   sync.Mutex
	once *sync.Once
	fs   afero.Fs
	path string
	idx  *NameIndex
	err  error
}

var nameIndex = &sharedIndex{once: new(sync.Once), fs: afero.NewOsFs()}

// SetIndexSource points the shared index at path on fs. Takes effect for
// the next Index call; an index already loaded is discarded.
func SetIndexSource(fs afero.Fs, path string) {
	nameIndex.mu.Lock()
	defer nameIndex.mu.Unlock()
	if fs == nil {
		fs = afero.NewOsFs()
	}
	nameIndex.fs = fs
	nameIndex.path = path
	nameIndex.once = new(sync.Once)
	nameIndex.idx = nil
	nameIndex.err = nil
}

// Index returns the process-wide name index, loading it on first use
func Index() (*NameIndex, error) {
	nameIndex.mu.Lock()
	defer nameIndex.mu.Unlock()
	nameIndex.once.Do(func() {
		nameIndex.idx, nameIndex.err = LoadIndex(nameIndex.fs, nameIndex.path)
	})
	return nameIndex.idx, nameIndex.err
}
