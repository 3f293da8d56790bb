package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mempirate/pdfmon/links"
	"github.com/mempirate/pdfmon/log"
)

// FileStore persists the link set as a JSON array of URLs in a single file.
// Every save fully replaces the previous contents.
type FileStore struct {
	log  zerolog.Logger
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		log:  log.NewLogger("state"),
		path: path,
	}
}

// Load reads the previously saved link set. A missing file is the normal
// first-run condition and yields an empty set. A file that cannot be read
// or parsed also yields an empty set, with a warning: losing prior state
// only risks a duplicate notification, never data loss.
func (s *FileStore) Load() links.Set {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Could not read state file, starting from empty set")
		}
		return links.New()
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("Could not parse state file, starting from empty set")
		return links.New()
	}

	return links.New(urls...)
}

// Save overwrites the state file with the given set, sorted and indented.
// The set is written to a temporary file first and renamed into place, so
// a crash mid-write never leaves a truncated file at the state path.
func (s *FileStore) Save(set links.Set) error {
	data, err := json.MarshalIndent(set.Sorted(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal link set")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create state directory %s", dir)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write state file")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "failed to replace state file")
	}

	return nil
}
