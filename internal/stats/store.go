package stats

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/log"
	"github.com/spiffcs/linear-stats/internal/model"
)

// Store keeps past run summaries as JSON Lines.
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultHistoryPath returns ~/.cache/linear-stats/history.jsonl.
func DefaultHistoryPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "linear-stats", "history.jsonl"), nil
}

// NewStore creates a store at path. The parent directory is created on the
// first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the history file location.
func (s *Store) Path() string {
	return s.path
}

// Append adds a summary and prunes to the last MaxHistoryRecords entries.
func (s *Store) Append(summary model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		log.Debug("could not read history, starting fresh", "error", err)
		records = nil
	}

	records = append(records, summary)

	if len(records) > constants.MaxHistoryRecords {
		records = records[len(records)-constants.MaxHistoryRecords:]
	}

	return s.writeAll(records)
}

// Recent returns the last n summaries, oldest first.
func (s *Store) Recent(n int) ([]model.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}

	if n <= 0 || len(records) <= n {
		return records, nil
	}
	return records[len(records)-n:], nil
}

func (s *Store) readAll() ([]model.RunSummary, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var records []model.RunSummary
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var summary model.RunSummary
		if err := json.Unmarshal(line, &summary); err != nil {
			continue // skip malformed lines
		}
		records = append(records, summary)
	}
	return records, scanner.Err()
}

// writeAll replaces the history file atomically.
func (s *Store) writeAll(records []model.RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(s.path), constants.DirPermissions); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, s.path)
}
