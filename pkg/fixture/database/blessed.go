// Package database provides a simple JSON-backed journal of blessed goldens.
package database

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/model"
)

// BlessedManager defines the interface for the bless journal.
type BlessedManager interface {
	LoadDatabaseFrom(dbPath string) error
	SaveDatabaseTo(dbPath string) error
	AppendEntry(entry *model.BlessEntry)
	FindLatest(suite, caseName string) *model.BlessEntry
	GetEntries() []*model.BlessEntry
	FilteredEntries(suite string) []*model.BlessEntry
}

// BlessedManagerImpl records every bless operation in order. The journal is
// append-only: re-blessing a case adds a new entry instead of rewriting the
// old one, so the full history of a golden stays available.
type BlessedManagerImpl struct {
	FormatVersion string              `json:"format_version"`
	LastUpdate    time.Time           `json:"last_update"`
	Entries       []*model.BlessEntry `json:"entries"`
	rwMutex       sync.RWMutex
}

const (
	// InitialEntryCapacity defines the initial slice capacity for journal entries.
	InitialEntryCapacity = 100
)

// NewBlessedManager creates a new empty bless journal.
func NewBlessedManager() *BlessedManagerImpl {
	return &BlessedManagerImpl{
		FormatVersion: "1",
		LastUpdate:    time.Now(),
		Entries:       make([]*model.BlessEntry, 0, InitialEntryCapacity),
	}
}

// LoadDatabaseFrom loads the bless journal from file. A missing file leaves
// the journal empty.
func (blessedDB *BlessedManagerImpl) LoadDatabaseFrom(dbPath string) error {
	cleanPath := filepath.Clean(dbPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("journal path must be absolute: %s: %w", dbPath, errors.ErrInvalidPath)
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return nil
	}

	file, err := os.Open(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return blessedDB.parseJournalFromReader(file)
}

// SaveDatabaseTo saves the bless journal to file.
func (blessedDB *BlessedManagerImpl) SaveDatabaseTo(dbPath string) (err error) {
	cleanPath := filepath.Clean(dbPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("journal path must be absolute: %s: %w", dbPath, errors.ErrInvalidPath)
	}

	dbDir := filepath.Dir(cleanPath)

	// Write to a temporary file and rename so readers never see a torn journal
	tmpFile, err := os.CreateTemp(dbDir, "goldfix-journal-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dbDir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	blessedDB.rwMutex.RLock()
	data, err := json.MarshalIndent(blessedDB, "", "  ")
	blessedDB.rwMutex.RUnlock()
	if err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to marshal journal to JSON: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to sync temporary file to disk: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, cleanPath); err != nil {
		return fmt.Errorf("failed to rename temporary file to %s: %w", cleanPath, err)
	}

	return nil
}

// AppendEntry adds a bless record to the journal.
func (blessedDB *BlessedManagerImpl) AppendEntry(entry *model.BlessEntry) {
	blessedDB.rwMutex.Lock()
	defer blessedDB.rwMutex.Unlock()

	if entry.BlessedAt.IsZero() {
		entry.BlessedAt = time.Now()
	}

	blessedDB.Entries = append(blessedDB.Entries, entry)
	blessedDB.LastUpdate = time.Now()
}

// FindLatest returns the most recent journal entry for a case, or nil if the
// case was never blessed.
func (blessedDB *BlessedManagerImpl) FindLatest(suite, caseName string) *model.BlessEntry {
	blessedDB.rwMutex.RLock()
	defer blessedDB.rwMutex.RUnlock()

	for i := len(blessedDB.Entries) - 1; i >= 0; i-- {
		entry := blessedDB.Entries[i]
		if entry.Suite == suite && entry.Case == caseName {
			return entry
		}
	}
	return nil
}

// GetEntries returns all journal entries in bless order.
func (blessedDB *BlessedManagerImpl) GetEntries() []*model.BlessEntry {
	blessedDB.rwMutex.RLock()
	defer blessedDB.rwMutex.RUnlock()

	// Return a copy of the slice to prevent data races
	entries := make([]*model.BlessEntry, len(blessedDB.Entries))
	copy(entries, blessedDB.Entries)
	return entries
}

// FilteredEntries returns the journal entries for one suite, or all entries
// when the suite filter is empty.
func (blessedDB *BlessedManagerImpl) FilteredEntries(suite string) []*model.BlessEntry {
	blessedDB.rwMutex.RLock()
	defer blessedDB.rwMutex.RUnlock()

	if suite == "" {
		entries := make([]*model.BlessEntry, len(blessedDB.Entries))
		copy(entries, blessedDB.Entries)
		return entries
	}

	var filtered []*model.BlessEntry
	for _, entry := range blessedDB.Entries {
		if entry.Suite == suite {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// parseJournalFromReader parses the journal from an io.Reader.
func (blessedDB *BlessedManagerImpl) parseJournalFromReader(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if err := json.Unmarshal(data, blessedDB); err != nil {
		return fmt.Errorf("failed to parse journal: %w", err)
	}

	return nil
}
