// Package cache writes the session-state snapshot at the end of a run.
//
// The snapshot is an audit record: it is written, never read back.
package cache

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
)

var log = logging.GetLogger("cache")

// Store persists a value as indented JSON at a fixed path
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store writing to path on fs
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path is where the snapshot is written
func (s *Store) Path() string {
	return s.path
}

// Save replaces the snapshot with v. The file is written next to its final
// location and renamed into place so a crash never leaves half a snapshot.
func (s *Store) Save(v interface{}) error {
	if s.path == "" {
		return errors.New(errors.ErrInvalidInput, "no cache path configured")
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrUnknown, "failed to encode session state")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create cache directory %s", dir).
			WithDetail("path", dir)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", tmp).
			WithDetail("path", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrIO, "failed to move session state into %s", s.path).
			WithDetail("path", s.path)
	}

	log.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Saved session state")
	return nil
}
