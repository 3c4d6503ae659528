package fixture

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fixture/database"
	"github.com/glorpus-work/goldfix/pkg/fsutil"
	"github.com/glorpus-work/goldfix/pkg/model"
)

// Blesser replaces golden files with accepted tool output and journals every
// replacement. Callers pass output already normalized for storage, so the
// stored bytes match what later verifications compare.
type Blesser struct {
	// Layout names the golden file for cases that do not have one yet.
	Layout Layout
	// JournalPath is the bless journal location. It must be absolute;
	// empty disables journaling.
	JournalPath string
}

// NewBlesser creates a blesser for suites using the given layout.
func NewBlesser(layout Layout, journalPath string) *Blesser {
	return &Blesser{
		Layout:      layout.normalized(),
		JournalPath: journalPath,
	}
}

// BlessCase writes the normalized output as the case's golden file and
// appends a journal entry. The golden is replaced atomically; a first-time
// bless creates it at the layout's golden path. The case is updated to point
// at the written golden.
func (b *Blesser) BlessCase(c *model.Case, normalized []byte, runID, note string) (*model.BlessEntry, error) {
	entry, target, err := b.describe(c, normalized)
	if err != nil {
		return nil, err
	}
	entry.RunID = runID
	entry.Note = note

	if err := writeGolden(target, normalized); err != nil {
		return nil, errors.Wrapf(err, "failed to write golden for case %s", c.Name)
	}
	if err := b.journal(entry); err != nil {
		return nil, errors.Wrapf(err, "failed to journal bless of case %s", c.Name)
	}

	c.GoldenPath = target
	if c.RelGolden == "" && c.RelInput != "" {
		c.RelGolden = b.Layout.GoldenPathFor(c.RelInput)
	}
	return entry, nil
}

// Preview returns the journal entry BlessCase would record without touching
// the golden file or the journal.
func (b *Blesser) Preview(c *model.Case, normalized []byte) (*model.BlessEntry, error) {
	entry, _, err := b.describe(c, normalized)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// describe builds the journal entry for blessing a case and resolves the
// golden path the write would go to.
func (b *Blesser) describe(c *model.Case, normalized []byte) (*model.BlessEntry, string, error) {
	if c == nil || c.InputPath == "" {
		return nil, "", errors.Wrap(errors.ErrInvalidPath, "case has no input path")
	}

	target := c.GoldenPath
	if target == "" {
		target = b.Layout.GoldenPathFor(c.InputPath)
	}

	oldChecksum := ""
	if data, err := os.ReadFile(target); err == nil {
		oldChecksum = checksumBytes(data)
	} else if !os.IsNotExist(err) {
		return nil, "", errors.Wrapf(err, "failed to read golden %s", target)
	}

	entry := &model.BlessEntry{
		Suite:       c.Suite,
		Case:        c.Name,
		OldChecksum: oldChecksum,
		NewChecksum: checksumBytes(normalized),
		BlessedAt:   time.Now().UTC(),
	}
	return entry, target, nil
}

// journal appends the entry to the bless journal on disk.
func (b *Blesser) journal(entry *model.BlessEntry) error {
	if b.JournalPath == "" {
		return nil
	}

	db := database.NewBlessedManager()
	if err := db.LoadDatabaseFrom(b.JournalPath); err != nil {
		return err
	}
	db.AppendEntry(entry)

	if err := fsutil.EnsureFileDir(b.JournalPath); err != nil {
		return err
	}
	return db.SaveDatabaseTo(b.JournalPath)
}

// writeGolden replaces the golden through a temporary file and rename so a
// crashed bless never leaves a half written golden behind.
func writeGolden(target string, content []byte) error {
	if err := fsutil.EnsureFileDir(target); err != nil {
		return err
	}

	dir := filepath.Dir(target)
	tmpFile, err := os.CreateTemp(dir, "goldfix-golden-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Chmod(target, fsutil.FileModeDefault)
}

func checksumBytes(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
