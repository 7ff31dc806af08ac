package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
)

// FileStore persists preferences as a single JSON file, rewritten
// atomically on every mutation. A flush failure degrades the store to
// in-memory behavior with a warning instead of surfacing an error
// through the port.
type FileStore struct {
	log     logrus.FieldLogger
	path    string
	strings map[string]string
	sets    map[string][]string
}

type fileFormat struct {
	Strings map[string]string   `json:"strings"`
	Sets    map[string][]string `json:"sets"`
}

// OpenFile loads the store at path, starting empty when the file does not
// exist yet. A present but unreadable or malformed file is an error; wiping
// someone's preferences silently is worse than failing to start.
func OpenFile(log logrus.FieldLogger, path string) (*FileStore, error) {
	s := &FileStore{
		log:     log.WithField("component", "prefs"),
		path:    path,
		strings: make(map[string]string),
		sets:    make(map[string][]string),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	var data fileFormat
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file: %w", err)
	}

	if data.Strings != nil {
		s.strings = data.Strings
	}

	if data.Sets != nil {
		s.sets = data.Sets
	}

	return s, nil
}

func (s *FileStore) GetString(key string) (string, bool) {
	v, ok := s.strings[key]

	return v, ok
}

func (s *FileStore) SetString(key, value string) {
	s.strings[key] = value
	s.flush()
}

func (s *FileStore) GetStringSet(key string) map[string]bool {
	out := make(map[string]bool, len(s.sets[key]))
	for _, v := range s.sets[key] {
		out[v] = true
	}

	return out
}

func (s *FileStore) SetStringSet(key string, values map[string]bool) {
	// Sets serialize as sorted slices so the file stays diffable.
	sorted := make([]string, 0, len(values))

	for v, ok := range values {
		if ok {
			sorted = append(sorted, v)
		}
	}

	sort.Strings(sorted)

	s.sets[key] = sorted
	s.flush()
}

func (s *FileStore) Remove(key string) {
	delete(s.strings, key)
	delete(s.sets, key)
	s.flush()
}

func (s *FileStore) flush() {
	pending, err := renameio.NewPendingFile(s.path)
	if err != nil {
		s.log.WithError(err).Warn("Failed to stage preferences file")

		return
	}

	defer func() {
		if err := pending.Cleanup(); err != nil {
			s.log.WithError(err).Debug("Failed to clean up pending preferences file")
		}
	}()

	enc := json.NewEncoder(pending)
	enc.SetIndent("", "  ")

	if err := enc.Encode(fileFormat{Strings: s.strings, Sets: s.sets}); err != nil {
		s.log.WithError(err).Warn("Failed to encode preferences")

		return
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		s.log.WithError(err).Warn("Failed to replace preferences file")
	}
}
